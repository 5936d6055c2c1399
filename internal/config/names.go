package config

import "fmt"

// validateLumpNames ensures lump names fit in a directory entry and only use characters found in WADs
func validateLumpNames(names []string) error {
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("lump name cannot be empty")
		}

		if len(name) > 8 {
			return fmt.Errorf("invalid lump name '%s': longer than 8 characters", name)
		}

		for _, char := range name {
			if !((char >= 'a' && char <= 'z') ||
				(char >= 'A' && char <= 'Z') ||
				(char >= '0' && char <= '9') ||
				char == '_' || char == '-' ||
				char == '[' || char == ']' || char == '\\') {
				return fmt.Errorf("invalid lump name '%s': contains invalid character '%c'", name, char)
			}
		}
	}
	return nil
}
