package server

import "strings"

func validateName(name string) (string, error) {
	trimmed := normalizeText(name)
	if len(trimmed) < minNameLength {
		return "", validationError("name must be at least %d characters", minNameLength)
	}
	if len(trimmed) > maxNameLength {
		return "", validationError("name must be %d characters or fewer", maxNameLength)
	}
	return trimmed, nil
}

// validateInvitationCode normalizes case-insensitive input to uppercase and
// checks the fixed 6-character shape.
func validateInvitationCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != invitationCodeLength {
		return "", validationError("invitation code must be exactly %d characters", invitationCodeLength)
	}
	for _, r := range normalized {
		if !strings.ContainsRune(invitationCodeAlphabet, r) {
			return "", validationError("invitation code contains unsupported characters")
		}
	}
	return normalized, nil
}

func validateCategories(categories []string) ([]string, error) {
	if len(categories) != categoriesPerRound {
		return nil, validationError("exactly %d categories are required", categoriesPerRound)
	}
	cleaned := make([]string, 0, categoriesPerRound)
	for _, category := range categories {
		trimmed := normalizeText(category)
		if trimmed == "" {
			return nil, validationError("categories cannot be empty")
		}
		if len(trimmed) > maxCategoryLength {
			return nil, validationError("categories must be %d characters or fewer", maxCategoryLength)
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned, nil
}

// validateAnswers checks one answer per category. Empty answers are allowed;
// a player may leave categories blank.
func validateAnswers(answers []string) ([]string, error) {
	if len(answers) != categoriesPerRound {
		return nil, validationError("exactly %d answers are required", categoriesPerRound)
	}
	cleaned := make([]string, 0, categoriesPerRound)
	for _, answer := range answers {
		trimmed := normalizeText(answer)
		if len(trimmed) > maxAnswerLength {
			return nil, validationError("answers must be %d characters or fewer", maxAnswerLength)
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}
