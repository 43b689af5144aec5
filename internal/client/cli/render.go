package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/grain/internal/client/models"
)

// renderPhotos prints one card per photo, numbered from offset+1.
func renderPhotos(w io.Writer, photos []models.Photo, offset int) {
	for i, p := range photos {
		fmt.Fprintf(w, "[%d] %s", offset+i+1, p.Author())
		if p.User.Username != "" {
			fmt.Fprintf(w, " (@%s)", p.User.Username)
		}
		fmt.Fprintln(w)
		if p.URLs.Regular != "" {
			fmt.Fprintf(w, "    %s\n", p.URLs.Regular)
		}
		fmt.Fprintf(w, "    ♥ %d likes\n", p.Likes)
		if c := p.Caption(); c != "" {
			fmt.Fprintf(w, "    %s\n", c)
		}
	}
}

func renderProfile(w io.Writer, s *models.Session, expiry time.Time, hasExpiry bool) {
	name := s.FullName()
	if name == "" {
		name = s.Username
	}
	fmt.Fprintln(w, name)
	fmt.Fprintf(w, "@%s\n", s.Username)

	rows := [][2]string{
		{"Email", s.Email},
		{"Gender", s.Gender},
		{"Avatar", s.Image},
	}
	if hasExpiry {
		rows = append(rows, [2]string{"Session expires", expiry.Local().Format(time.RFC1123)})
	} else {
		rows = append(rows, [2]string{"Session expires", "unknown"})
	}
	for _, r := range rows {
		if strings.TrimSpace(r[1]) == "" {
			continue
		}
		fmt.Fprintf(w, "  %-16s %s\n", r[0], r[1])
	}
}
