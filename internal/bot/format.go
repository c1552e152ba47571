package bot

import (
	"fmt"

	"github.com/krlohnes/album-club-bot/internal/catalog"
	"github.com/krlohnes/album-club-bot/internal/prefetch"
)

func formatNext(res *prefetch.Result) string {
	msg := fmt.Sprintf("The next album is %s", res.Album)
	if res.Link != "" {
		msg += "\n" + res.Link
	}
	return msg
}

func formatCurrent(album catalog.Album) string {
	return fmt.Sprintf("The current album is %s", album)
}

func formatReviewer(name string) string {
	return fmt.Sprintf("The next reviewer is %s", name)
}
