package model

import (
	"fmt"
	"strings"

	"github.com/aledsdavies/rfparse/pkgs/lexer"
	"github.com/aledsdavies/rfparse/pkgs/typeinfo"
	"github.com/aledsdavies/rfparse/pkgs/variables"
)

// option is a statement option and its accepted values. Options without
// values accept anything.
type option struct {
	name   string
	values []string
}

// validateOptions checks option values case-insensitively. Values containing
// variables are resolved at execution time and are not checked.
func validateOptions(s *StatementBase, label string, options []option) {
	given := s.Options()
	for _, opt := range options {
		value, ok := given[opt.name]
		if !ok || opt.values == nil || variables.ContainsVariable(value) {
			continue
		}
		if !containsFold(opt.values, value) {
			s.AddError(fmt.Sprintf("%s option '%s' does not accept value '%s'. Valid values are %s.",
				label, opt.name, value, seq2str(opt.values)))
		}
	}
}

func containsFold(values []string, value string) bool {
	for _, v := range values {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// validateAssignment returns at most one error per assigned variable.
func validateAssignment(assign []string) []string {
	var errs []string
	var seenMark, seenList, seenDict, seenAny bool
	for _, variable := range assign {
		if err := func() string {
			if seenMark {
				return "Assign mark '=' can be used only with the last variable."
			}
			if strings.HasSuffix(variable, "=") {
				seenMark = true
				variable = strings.TrimRight(variable[:len(variable)-1], " ")
			}
			m := variables.MustSearch(variable, variables.WithParseType())
			if !m.IsAssign(variables.AssignOpts{AllowItems: true, AllowNested: true}) {
				return fmt.Sprintf("Invalid variable name '%s'.", variable)
			}
			isDict := m.Identifier == '&'
			if seenDict || (isDict && seenAny) {
				return "Dictionary variable cannot be assigned with other variables."
			}
			if m.Identifier == '@' {
				if seenList {
					return "Assignment can contain only one list variable."
				}
				seenList = true
			}
			seenDict = seenDict || isDict
			seenAny = true
			if m.Type != "" {
				if _, err := typeinfo.FromVariable(m.Identifier, m.Type, true); err != nil {
					return fmt.Sprintf("Invalid variable '%s': %s", variable, err)
				}
			}
			return ""
		}(); err != "" {
			errs = append(errs, err)
		}
	}
	return errs
}

// validateVariable checks the VARIABLE token of Variable and Var.
func validateVariable(s *StatementBase) {
	name := s.GetValue(lexer.VARIABLE, "")
	m := variables.MustSearch(stripAssignMark(name), variables.WithParseType())
	if !variables.MustSearch(name).IsAssign(variables.AssignOpts{AllowAssignMark: true, AllowNested: true}) {
		s.AddError(fmt.Sprintf("Invalid variable name '%s'.", name))
		return
	}
	if m.Identifier == '&' {
		for _, item := range s.GetValues(lexer.ARGUMENT) {
			if _, _, ok := variables.SplitFromEquals(item); !ok && !variables.IsDictVariable(item) {
				s.AddError(fmt.Sprintf("Invalid dictionary variable item '%s'. Items must use 'name=value' syntax or be dictionary variables themselves.", item))
			}
		}
	}
	if m.Type != "" {
		if _, err := typeinfo.FromVariable(m.Identifier, m.Type, true); err != nil {
			s.AddError(fmt.Sprintf("Invalid variable '%s': %s", stripAssignMark(name), err))
		}
	}
}

func validateLoopVariable(variable string) string {
	m := variables.MustSearch(variable, variables.WithParseType())
	if !m.IsScalarAssign(variables.AssignOpts{}) {
		return fmt.Sprintf("Invalid FOR loop variable '%s'.", variable)
	}
	if m.Type != "" {
		if _, err := typeinfo.FromVariable(m.Identifier, m.Type, false); err != nil {
			return fmt.Sprintf("Invalid FOR loop variable '%s': %s", variable, err)
		}
	}
	return ""
}

func isScalarAssign(variable string) bool {
	return variables.MustSearch(variable, variables.WithParseType()).IsScalarAssign(variables.AssignOpts{})
}

// validateArgumentSpec checks the [Arguments] of a user keyword.
func validateArgumentSpec(args []string) []string {
	var errs []string
	var positionalDefault, namedOnly, kwargs bool
	for _, arg := range args {
		name, _, hasDefault := variables.SplitFromEquals(arg)
		m := variables.MustSearch(name, variables.WithParseType())
		if !m.IsAssign(variables.AssignOpts{}) && name != "@{}" {
			errs = append(errs, fmt.Sprintf("Invalid argument syntax '%s'.", arg))
			continue
		}
		if m.Type != "" {
			if _, err := typeinfo.FromVariable(m.Identifier, m.Type, false); err != nil {
				errs = append(errs, fmt.Sprintf("Invalid argument '%s': %s", arg, err))
			}
		}
		if kwargs {
			errs = append(errs, "Only last argument can be kwargs.")
		}
		switch {
		case m.Identifier == '&':
			kwargs = true
		case name == "@{}" || m.Identifier == '@':
			if namedOnly {
				errs = append(errs, "Cannot have multiple varargs.")
			}
			namedOnly = true
		case hasDefault:
			positionalDefault = positionalDefault || !namedOnly
		case positionalDefault && !namedOnly:
			errs = append(errs, "Non-default argument after default arguments.")
		}
	}
	return errs
}
