package usecase

import (
	"fmt"
	"strings"
)

// reservedNames não podem ser usados por relatórios de serviço.
var reservedNames = map[string]bool{
	"run-summary": true,
}

// ReportFileNames devolve, para cada serviço, um nome de arquivo seguro e único.
// O resultado só depende da lista de entrada.
func ReportFileNames(services []string) []string {
	taken := make(map[string]bool, len(services))
	names := make([]string, len(services))

	for i, service := range services {
		base := sanitizeFileName(service)
		name := base
		for n := 2; taken[name] || reservedNames[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

// sanitizeFileName: "Amazon S3" -> "s3", "AWS Lambda" -> "aws_lambda".
func sanitizeFileName(service string) string {
	name := strings.TrimSpace(service)
	name = strings.TrimPrefix(name, "Amazon ")
	name = strings.ToLower(name)

	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}

	out := strings.Trim(b.String(), "_.")
	if out == "" {
		return "service"
	}
	return out
}
