package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName      = "bool"
	booleanFlagTrueLiteral   = "true"
	booleanFlagAcceptedInput = "true, false, yes, no, on, off, 1, 0"
	errorBooleanFlagFormat   = "invalid boolean value %q for --%s; accepted values: %s"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// booleanFlagValue is a pflag.Value accepting yes/no/on/off literals besides true/false.
type booleanFlagValue struct {
	target *bool
	name   string
}

func (value *booleanFlagValue) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, known := booleanFlagLiterals[normalized]
	if !known {
		return fmt.Errorf(errorBooleanFlagFormat, input, value.name, booleanFlagAcceptedInput)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

// Type reports "bool" so viper reads the flag as a boolean.
func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

// registerBooleanFlag adds a boolean flag that may be given bare, as --name=value, or as --name value.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, usage string) {
	*target = false
	flagSet.Var(&booleanFlagValue{target: target, name: name}, name, usage)
	if registered := flagSet.Lookup(name); registered != nil {
		registered.DefValue = strconv.FormatBool(false)
		registered.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments rewrites "--name value" into "--name=value" for boolean flags
// anywhere in the command tree when value is a boolean literal. Other arguments pass through,
// so "--check ./src" keeps ./src positional.
func normalizeBooleanFlagArguments(rootCommand *cobra.Command, arguments []string) []string {
	booleanFlagNames := map[string]struct{}{}
	collectBooleanFlagNames(rootCommand, booleanFlagNames)
	if len(booleanFlagNames) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if value, consumed := joinedBooleanValue(booleanFlagNames, arguments, index); consumed {
			normalized = append(normalized, argument+"="+value)
			index++
			continue
		}
		normalized = append(normalized, argument)
	}
	return normalized
}

// joinedBooleanValue reports whether arguments[index] is a bare boolean flag followed by a literal.
func joinedBooleanValue(booleanFlagNames map[string]struct{}, arguments []string, index int) (string, bool) {
	argument := arguments[index]
	if !strings.HasPrefix(argument, "--") || strings.Contains(argument, "=") || index+1 >= len(arguments) {
		return "", false
	}
	if _, isBoolean := booleanFlagNames[strings.TrimPrefix(argument, "--")]; !isBoolean {
		return "", false
	}
	candidate := arguments[index+1]
	if _, isLiteral := booleanFlagLiterals[strings.ToLower(strings.TrimSpace(candidate))]; !isLiteral {
		return "", false
	}
	return candidate, true
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	if command == nil {
		return
	}
	collect := func(flag *pflag.Flag) {
		if flag.Value != nil && flag.Value.Type() == booleanFlagTypeName {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(collect)
	command.Flags().VisitAll(collect)
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
