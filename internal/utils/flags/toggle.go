package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalConstant           = "true"
	toggleFalseCanonicalConstant          = "false"
	toggleYesLiteralConstant              = "yes"
	toggleNoLiteralConstant               = "no"
	toggleOnLiteralConstant               = "on"
	toggleOffLiteralConstant              = "off"
	toggleOneLiteralConstant              = "1"
	toggleZeroLiteralConstant             = "0"
	toggleShortTrueLiteralConstant        = "t"
	toggleShortFalseLiteralConstant       = "f"
	toggleShortYesLiteralConstant         = "y"
	toggleShortNoLiteralConstant          = "n"
	toggleValueTypeNameConstant           = "bool"
	toggleInvalidValueTemplateConstant    = "invalid toggle value %q"
	toggleDefaultTruePlaceholderConstant  = "<YES|no>"
	toggleDefaultFalsePlaceholderConstant = "<yes|NO>"
	longFlagPrefixConstant                = "--"
	shortFlagPrefixConstant               = "-"
	flagValueSeparatorConstant            = "="
	argumentTerminatorConstant            = "--"
)

var (
	affirmativeToggleLiterals = map[string]struct{}{
		toggleTrueCanonicalConstant:    {},
		toggleYesLiteralConstant:       {},
		toggleOnLiteralConstant:        {},
		toggleOneLiteralConstant:       {},
		toggleShortTrueLiteralConstant: {},
		toggleShortYesLiteralConstant:  {},
	}
	negativeToggleLiterals = map[string]struct{}{
		toggleFalseCanonicalConstant:    {},
		toggleNoLiteralConstant:         {},
		toggleOffLiteralConstant:        {},
		toggleZeroLiteralConstant:       {},
		toggleShortFalseLiteralConstant: {},
		toggleShortNoLiteralConstant:    {},
	}

	registeredToggleMutex      sync.RWMutex
	registeredToggleNames      = map[string]struct{}{}
	registeredToggleShorthands = map[string]struct{}{}
)

// AddToggleFlag registers a boolean flag that accepts yes/no style values and
// turns on when provided without a value.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, flagName string, flagShorthand string, defaultValue bool, usageDescription string) {
	if flagSet == nil || len(flagName) == 0 {
		return
	}

	flagValue := newToggleValue(defaultValue, target)
	if len(flagShorthand) > 0 {
		flagSet.VarP(flagValue, flagName, flagShorthand, usageDescription)
	} else {
		flagSet.Var(flagValue, flagName, usageDescription)
	}

	registeredFlag := flagSet.Lookup(flagName)
	if registeredFlag == nil {
		return
	}
	registeredFlag.NoOptDefVal = toggleTrueCanonicalConstant
	registeredFlag.Usage = formatToggleUsage(usageDescription, defaultValue)

	registeredToggleMutex.Lock()
	registeredToggleNames[flagName] = struct{}{}
	if len(flagShorthand) > 0 {
		registeredToggleShorthands[flagShorthand] = struct{}{}
	}
	registeredToggleMutex.Unlock()
}

// NormalizeToggleArguments rewrites "--flag value" into "--flag=value" for
// registered toggle flags so pflag does not treat the value as a positional
// argument.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalizedArguments := make([]string, 0, len(arguments))
	argumentIndex := 0
	for argumentIndex < len(arguments) {
		currentArgument := arguments[argumentIndex]
		if currentArgument == argumentTerminatorConstant {
			normalizedArguments = append(normalizedArguments, arguments[argumentIndex:]...)
			break
		}

		rewrittenArgument, consumedCount := rewriteToggleArgument(currentArgument, arguments, argumentIndex)
		if consumedCount > 0 {
			normalizedArguments = append(normalizedArguments, rewrittenArgument)
			argumentIndex += consumedCount
			continue
		}

		normalizedArguments = append(normalizedArguments, currentArgument)
		argumentIndex++
	}

	return normalizedArguments
}

func formatToggleUsage(usageDescription string, defaultValue bool) string {
	placeholder := toggleDefaultFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleDefaultTruePlaceholderConstant
	}
	trimmedDescription := strings.TrimSpace(usageDescription)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(choiceBareUsageTemplateConstant, placeholder)
	}
	return fmt.Sprintf(choiceFullUsageTemplateConstant, placeholder, trimmedDescription)
}

// rewriteToggleArgument inspects one argument and, when it names a registered
// toggle flag followed by a detached value, folds the value into the argument.
// The returned count reports how many raw arguments were consumed; zero means
// the argument is not a toggle flag.
func rewriteToggleArgument(currentArgument string, arguments []string, argumentIndex int) (string, int) {
	flagToken, isLongFlag := extractFlagToken(currentArgument)
	if len(flagToken) == 0 {
		return "", 0
	}

	if separatorIndex := strings.Index(flagToken, flagValueSeparatorConstant); separatorIndex >= 0 {
		flagToken = flagToken[:separatorIndex]
		if !isRegisteredToggle(flagToken, isLongFlag) {
			return "", 0
		}
		return currentArgument, 1
	}

	if !isRegisteredToggle(flagToken, isLongFlag) {
		return "", 0
	}

	if argumentIndex+1 >= len(arguments) {
		return currentArgument, 1
	}
	followingArgument := arguments[argumentIndex+1]
	if strings.HasPrefix(followingArgument, shortFlagPrefixConstant) {
		return currentArgument, 1
	}
	return currentArgument + flagValueSeparatorConstant + followingArgument, 2
}

func extractFlagToken(argument string) (string, bool) {
	if strings.HasPrefix(argument, longFlagPrefixConstant) {
		return strings.TrimPrefix(argument, longFlagPrefixConstant), true
	}
	if strings.HasPrefix(argument, shortFlagPrefixConstant) {
		return strings.TrimPrefix(argument, shortFlagPrefixConstant), false
	}
	return "", false
}

func isRegisteredToggle(flagToken string, isLongFlag bool) bool {
	if len(flagToken) == 0 {
		return false
	}
	if !isLongFlag && len(flagToken) != 1 {
		return false
	}

	registeredToggleMutex.RLock()
	defer registeredToggleMutex.RUnlock()
	if isLongFlag {
		_, exists := registeredToggleNames[flagToken]
		return exists
	}
	_, exists := registeredToggleShorthands[flagToken]
	return exists
}

type toggleValue struct {
	currentValue bool
	target       *bool
}

func newToggleValue(defaultValue bool, target *bool) *toggleValue {
	if target != nil {
		*target = defaultValue
	}
	return &toggleValue{currentValue: defaultValue, target: target}
}

func (value *toggleValue) Set(rawValue string) error {
	trimmedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(trimmedValue) == 0 {
		trimmedValue = toggleTrueCanonicalConstant
	}

	if _, isAffirmative := affirmativeToggleLiterals[trimmedValue]; isAffirmative {
		value.assign(true)
		return nil
	}
	if _, isNegative := negativeToggleLiterals[trimmedValue]; isNegative {
		value.assign(false)
		return nil
	}

	return fmt.Errorf(toggleInvalidValueTemplateConstant, rawValue)
}

func (value *toggleValue) assign(parsedValue bool) {
	value.currentValue = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}
}

func (value *toggleValue) String() string {
	if value != nil && value.currentValue {
		return toggleTrueCanonicalConstant
	}
	return toggleFalseCanonicalConstant
}

func (value *toggleValue) Type() string {
	return toggleValueTypeNameConstant
}
