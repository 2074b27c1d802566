package probe

import (
	"fmt"
	"net/http"

	"github.com/soul23/healthchecker/internal/domain"
)

func ok(detail string) domain.Status {
	return domain.Status{Level: domain.LevelOK, Text: "🟢 OK (" + detail + ")"}
}

func warning(detail string) domain.Status {
	return domain.Status{Level: domain.LevelWarning, Text: "🟡 Advertencia (" + detail + ")"}
}

func down(detail string) domain.Status {
	return domain.Status{Level: domain.LevelDown, Text: "🔴 Caído (" + detail + ")"}
}

func failed(text string) domain.Status {
	return domain.Status{Level: domain.LevelDown, Text: "🔴 " + text}
}

// Classify maps a raw HTTP status code to a status. 0 means no response.
func Classify(code int) domain.Status {
	switch code {
	case http.StatusOK:
		return ok(fmt.Sprint(code))
	case http.StatusMovedPermanently, http.StatusFound, http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return ok(fmt.Sprintf("Redirección %d", code))
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return warning(fmt.Sprint(code))
	default:
		return down(fmt.Sprint(code))
	}
}
