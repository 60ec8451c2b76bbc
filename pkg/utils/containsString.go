package utils

func ContainsString(slice []string, searchTerm string) bool {
	for _, s := range slice {
		if s == searchTerm {
			return true
		}
	}
	return false
}
