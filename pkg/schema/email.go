package schema

import "strings"

// ValidEmailAddress reports whether the value matches the address grammar the
// reset form accepts: a non-empty local part, "@", and a domain containing at
// least one dot with non-empty labels. The check is intentionally stricter
// than net/mail so rejected values always surface the same field message.
func ValidEmailAddress(value string) bool {
	if value == "" {
		return false
	}
	if strings.ContainsAny(value, " \t\r\n") {
		return false
	}

	at := strings.LastIndex(value, "@")
	if at <= 0 {
		return false
	}

	local := value[:at]
	domain := value[at+1:]
	if local == "" || domain == "" {
		return false
	}
	if strings.Contains(local, "@") {
		return false
	}

	if !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}
