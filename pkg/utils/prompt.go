package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/picogrid/situation-monitor/pkg/simulation"
)

// MergeParameters layers parameter maps; later layers win
func MergeParameters(layers ...map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{})
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}

// PromptForParameters resolves every parameter. Values in defaults are
// offered as the prompt default; with interactive false they are used as-is
// and a required parameter without a value is an error.
func PromptForParameters(params []simulation.Parameter, defaults map[string]interface{}, interactive bool) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(params))

	for _, param := range params {
		if v, ok := defaults[param.Name]; ok {
			param.Default = v
		}
		if param.Default != nil {
			normalized, err := NormalizeValue(param, param.Default)
			if err != nil {
				return nil, fmt.Errorf("invalid value for %s: %w", param.Name, err)
			}
			param.Default = normalized
		}

		if !interactive {
			if param.Default == nil {
				if param.Required {
					return nil, fmt.Errorf("required parameter %s not provided and no default available", param.Name)
				}
				continue
			}
			result[param.Name] = param.Default
			continue
		}

		value, err := promptForParameter(param)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", param.Name, err)
		}
		result[param.Name] = value
	}

	return result, nil
}

// ParseValue parses a textual value according to the parameter type
func ParseValue(value string, param simulation.Parameter) (interface{}, error) {
	value = strings.TrimSpace(value)
	switch param.Type {
	case simulation.TypeInteger:
		return strconv.Atoi(value)
	case simulation.TypeFloat:
		return strconv.ParseFloat(value, 64)
	case simulation.TypeString:
		return value, nil
	case simulation.TypeBoolean:
		return strconv.ParseBool(value)
	case simulation.TypeDuration:
		duration, err := time.ParseDuration(value)
		if err != nil {
			// a bare number is milliseconds
			ms, numErr := strconv.ParseFloat(value, 64)
			if numErr != nil {
				return nil, err
			}
			return millis(ms), nil
		}
		return duration, nil
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", param.Type)
	}
}

// NormalizeValue converts a value from YAML, viper or the environment into
// the Go type of the parameter and validates range and options
func NormalizeValue(param simulation.Parameter, v interface{}) (interface{}, error) {
	var value interface{}

	switch val := v.(type) {
	case string:
		parsed, err := ParseValue(val, param)
		if err != nil {
			return nil, err
		}
		value = parsed
	default:
		switch param.Type {
		case simulation.TypeInteger:
			switch n := val.(type) {
			case int:
				value = n
			case int64:
				value = int(n)
			case float64:
				if n != float64(int(n)) {
					return nil, fmt.Errorf("%v is not an integer", n)
				}
				value = int(n)
			default:
				return nil, fmt.Errorf("expected an integer, got %T", v)
			}
		case simulation.TypeFloat:
			switch n := val.(type) {
			case float64:
				value = n
			case int:
				value = float64(n)
			case int64:
				value = float64(n)
			default:
				return nil, fmt.Errorf("expected a number, got %T", v)
			}
		case simulation.TypeBoolean:
			b, ok := val.(bool)
			if !ok {
				return nil, fmt.Errorf("expected a boolean, got %T", v)
			}
			value = b
		case simulation.TypeDuration:
			switch d := val.(type) {
			case time.Duration:
				value = d
			case int:
				value = millis(float64(d))
			case int64:
				value = millis(float64(d))
			case float64:
				value = millis(d)
			default:
				return nil, fmt.Errorf("expected a duration, got %T", v)
			}
		case simulation.TypeString:
			value = fmt.Sprintf("%v", val)
		default:
			return nil, fmt.Errorf("unsupported parameter type: %s", param.Type)
		}
	}

	if err := ValidateValue(param, value); err != nil {
		return nil, err
	}
	return value, nil
}

// ValidateValue checks a typed value against the parameter's range and options
func ValidateValue(param simulation.Parameter, value interface{}) error {
	switch v := value.(type) {
	case int:
		if param.Min != nil && v < toInt(param.Min) {
			return fmt.Errorf("value must be at least %d", toInt(param.Min))
		}
		if param.Max != nil && v > toInt(param.Max) {
			return fmt.Errorf("value must be at most %d", toInt(param.Max))
		}
	case float64:
		if param.Min != nil && v < toFloat64(param.Min) {
			return fmt.Errorf("value must be at least %g", toFloat64(param.Min))
		}
		if param.Max != nil && v > toFloat64(param.Max) {
			return fmt.Errorf("value must be at most %g", toFloat64(param.Max))
		}
	case string:
		if len(param.Options) > 0 {
			for _, opt := range param.Options {
				if opt == v {
					return nil
				}
			}
			return fmt.Errorf("value must be one of: %s", strings.Join(param.Options, ", "))
		}
	}
	return nil
}

func promptForParameter(param simulation.Parameter) (interface{}, error) {
	switch param.Type {
	case simulation.TypeInteger:
		return promptInteger(param)
	case simulation.TypeFloat:
		return promptFloat(param)
	case simulation.TypeString:
		return promptString(param)
	case simulation.TypeBoolean:
		return promptBoolean(param)
	case simulation.TypeDuration:
		return promptDuration(param)
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", param.Type)
	}
}

// typedValidator rejects answers that do not parse or fall out of range,
// so survey re-asks instead of failing the run
func typedValidator(param simulation.Parameter) survey.Validator {
	return func(ans interface{}) error {
		str, ok := ans.(string)
		if !ok {
			return nil
		}
		if str == "" && !param.Required {
			return nil
		}
		_, err := NormalizeValue(param, str)
		return err
	}
}

func defaultString(param simulation.Parameter) string {
	if param.Default == nil {
		return ""
	}
	return fmt.Sprintf("%v", param.Default)
}

func askTyped(param simulation.Parameter, message string) (interface{}, error) {
	prompt := &survey.Input{
		Message: message,
		Default: defaultString(param),
	}

	validators := []survey.Validator{typedValidator(param)}
	if param.Required {
		validators = append([]survey.Validator{survey.Required}, validators...)
	}

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.ComposeValidators(validators...))); err != nil {
		return nil, err
	}
	return NormalizeValue(param, result)
}

func promptInteger(param simulation.Parameter) (interface{}, error) {
	return askTyped(param, param.Description)
}

func promptFloat(param simulation.Parameter) (interface{}, error) {
	return askTyped(param, param.Description)
}

func promptDuration(param simulation.Parameter) (interface{}, error) {
	return askTyped(param, param.Description+" (e.g., 500ms, 5s, 1m30s)")
}

func promptString(param simulation.Parameter) (interface{}, error) {
	if len(param.Options) > 0 {
		prompt := &survey.Select{
			Message: param.Description,
			Options: param.Options,
		}
		if d := defaultString(param); d != "" {
			prompt.Default = d
		}

		var result string
		if err := survey.AskOne(prompt, &result); err != nil {
			return "", err
		}
		return result, nil
	}

	prompt := &survey.Input{
		Message: param.Description,
		Default: defaultString(param),
	}

	var validators []survey.Validator
	if param.Required {
		validators = append(validators, survey.Required)
	}

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.ComposeValidators(validators...))); err != nil {
		return "", err
	}
	return result, nil
}

func promptBoolean(param simulation.Parameter) (interface{}, error) {
	defaultBool := false
	switch v := param.Default.(type) {
	case bool:
		defaultBool = v
	case string:
		defaultBool = v == "true" || v == "yes" || v == "1"
	}

	prompt := &survey.Confirm{
		Message: param.Description,
		Default: defaultBool,
	}

	var result bool
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func toInt(v interface{}) int {
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(val)
		return i
	default:
		return 0
	}
}

func toFloat64(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	default:
		return 0
	}
}
