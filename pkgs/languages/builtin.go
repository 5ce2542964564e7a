package languages

func headers(settings, variables, testCases, tasks, keywords, comments string) map[string]string {
	return map[string]string{
		Settings:  settings,
		Variables: variables,
		TestCases: testCases,
		Tasks:     tasks,
		Keywords:  keywords,
		Comments:  comments,
	}
}

var English = &Language{
	Code:    "en",
	Name:    "English",
	Headers: headers(Settings, Variables, TestCases, Tasks, Keywords, Comments),
	Settings: map[string]string{
		"Library":        "Library",
		"Resource":       "Resource",
		"Variables":      "Variables",
		"Name":           "Name",
		"Documentation":  "Documentation",
		"Metadata":       "Metadata",
		"Suite Setup":    "Suite Setup",
		"Suite Teardown": "Suite Teardown",
		"Test Setup":     "Test Setup",
		"Task Setup":     "Task Setup",
		"Test Teardown":  "Test Teardown",
		"Task Teardown":  "Task Teardown",
		"Test Template":  "Test Template",
		"Task Template":  "Task Template",
		"Test Timeout":   "Test Timeout",
		"Task Timeout":   "Task Timeout",
		"Test Tags":      "Test Tags",
		"Task Tags":      "Task Tags",
		"Force Tags":     "Force Tags",
		"Default Tags":   "Default Tags",
		"Keyword Tags":   "Keyword Tags",
		"Tags":           "Tags",
		"Setup":          "Setup",
		"Teardown":       "Teardown",
		"Template":       "Template",
		"Timeout":        "Timeout",
		"Arguments":      "Arguments",
		"Return":         "Return",
	},
}

var Finnish = &Language{
	Code:    "fi",
	Name:    "Finnish",
	Headers: headers("Asetukset", "Muuttujat", "Testit", "Tehtävät", "Avainsanat", "Kommentit"),
	Settings: map[string]string{
		"Library":        "Kirjasto",
		"Resource":       "Resurssi",
		"Variables":      "Muuttujat",
		"Name":           "Nimi",
		"Documentation":  "Dokumentaatio",
		"Metadata":       "Metatiedot",
		"Suite Setup":    "Setin Alustus",
		"Suite Teardown": "Setin Alasajo",
		"Test Setup":     "Testin Alustus",
		"Task Setup":     "Tehtävän Alustus",
		"Test Teardown":  "Testin Alasajo",
		"Task Teardown":  "Tehtävän Alasajo",
		"Test Template":  "Testin Malli",
		"Task Template":  "Tehtävän Malli",
		"Test Timeout":   "Testin Aikaraja",
		"Task Timeout":   "Tehtävän Aikaraja",
		"Test Tags":      "Testin Tagit",
		"Task Tags":      "Tehtävän Tagit",
		"Keyword Tags":   "Avainsanan Tagit",
		"Tags":           "Tagit",
		"Setup":          "Alustus",
		"Teardown":       "Alasajo",
		"Template":       "Malli",
		"Timeout":        "Aikaraja",
		"Arguments":      "Argumentit",
	},
}

var German = &Language{
	Code:    "de",
	Name:    "German",
	Headers: headers("Einstellungen", "Variablen", "Testfälle", "Aufgaben", "Schlüsselwörter", "Kommentare"),
	Settings: map[string]string{
		"Library":        "Bibliothek",
		"Resource":       "Ressource",
		"Variables":      "Variablen",
		"Name":           "Name",
		"Documentation":  "Dokumentation",
		"Metadata":       "Metadaten",
		"Suite Setup":    "Suitevorbereitung",
		"Suite Teardown": "Suitenachbereitung",
		"Test Setup":     "Testvorbereitung",
		"Task Setup":     "Aufgabenvorbereitung",
		"Test Teardown":  "Testnachbereitung",
		"Task Teardown":  "Aufgabennachbereitung",
		"Test Template":  "Testvorlage",
		"Task Template":  "Aufgabenvorlage",
		"Test Timeout":   "Testzeitlimit",
		"Task Timeout":   "Aufgabenzeitlimit",
		"Test Tags":      "Testmarker",
		"Task Tags":      "Aufgabenmarker",
		"Keyword Tags":   "Schlüsselwortmarker",
		"Tags":           "Marker",
		"Setup":          "Vorbereitung",
		"Teardown":       "Nachbereitung",
		"Template":       "Vorlage",
		"Timeout":        "Zeitlimit",
		"Arguments":      "Argumente",
	},
}

var Swedish = &Language{
	Code:    "sv",
	Name:    "Swedish",
	Headers: headers("Inställningar", "Variabler", "Testfall", "Taskar", "Nyckelord", "Kommentarer"),
	Settings: map[string]string{
		"Library":        "Bibliotek",
		"Resource":       "Resurs",
		"Variables":      "Variabler",
		"Name":           "Namn",
		"Documentation":  "Dokumentation",
		"Metadata":       "Metadata",
		"Suite Setup":    "Svit Konfigurering",
		"Suite Teardown": "Svit Nedrivning",
		"Test Setup":     "Test Konfigurering",
		"Task Setup":     "Task Konfigurering",
		"Test Teardown":  "Test Nedrivning",
		"Task Teardown":  "Task Nedrivning",
		"Test Template":  "Test Mall",
		"Task Template":  "Task Mall",
		"Test Timeout":   "Test Timeout",
		"Task Timeout":   "Task Timeout",
		"Test Tags":      "Test Taggar",
		"Task Tags":      "Arbetsuppgift Taggar",
		"Keyword Tags":   "Nyckelord Taggar",
		"Tags":           "Taggar",
		"Setup":          "Konfigurering",
		"Teardown":       "Nedrivning",
		"Template":       "Mall",
		"Timeout":        "Timeout",
		"Arguments":      "Argument",
	},
}

var French = &Language{
	Code:    "fr",
	Name:    "French",
	Headers: headers("Paramètres", "Variables", "Unités de test", "Tâches", "Mots-clés", "Commentaires"),
	Settings: map[string]string{
		"Library":        "Bibliothèque",
		"Resource":       "Ressource",
		"Variables":      "Variable",
		"Name":           "Nom",
		"Documentation":  "Documentation",
		"Metadata":       "Méta-donnée",
		"Suite Setup":    "Mise en place de suite",
		"Suite Teardown": "Démontage de suite",
		"Test Setup":     "Mise en place de test",
		"Task Setup":     "Mise en place de tâche",
		"Test Teardown":  "Démontage de test",
		"Task Teardown":  "Démontage de tâche",
		"Test Template":  "Modèle de test",
		"Task Template":  "Modèle de tâche",
		"Test Timeout":   "Délai de test",
		"Task Timeout":   "Délai de tâche",
		"Test Tags":      "Étiquette de test",
		"Task Tags":      "Étiquette de tâche",
		"Keyword Tags":   "Etiquette de mot-clé",
		"Tags":           "Étiquette",
		"Setup":          "Mise en place",
		"Teardown":       "Démontage",
		"Template":       "Modèle",
		"Timeout":        "Délai d'attente",
		"Arguments":      "Arguments",
	},
}
