package pipeline

import (
	"github.com/toddlburns/yt-tracker/internal/knowledge"
	"github.com/toddlburns/yt-tracker/internal/record"
)

// ScrapedRows renders a resolution in the scraped-table shape: one row named
// after the artist for a solo birthday, one row per member for a group, and a
// single row with empty member and birthday when nothing was found.
func ScrapedRows(target record.MissingArtist, res knowledge.Resolution) []record.ScrapedBirthday {
	if len(res.Members) == 0 {
		return []record.ScrapedBirthday{{
			ArtistName:    target.ArtistName,
			ArtistPageURL: target.ArtistPageURL,
		}}
	}
	rows := make([]record.ScrapedBirthday, 0, len(res.Members))
	for _, m := range res.Members {
		rows = append(rows, record.ScrapedBirthday{
			ArtistName:    target.ArtistName,
			MemberName:    m.Member,
			ArtistPageURL: target.ArtistPageURL,
			Birthday:      m.Birthday.String(),
		})
	}
	return rows
}
