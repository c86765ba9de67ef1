package services

import (
	"context"
	"log"
	"regexp"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	config "github.com/comeoffice/rank_booking/configs"
)

var publicIDPattern = regexp.MustCompile(`/upload/(?:v\d+/)?(.+)\.\w+$`)

// ExtractPublicIDFromURL pulls the Cloudinary public ID (folder included)
// out of a delivery URL. Returns "" for URLs that are not Cloudinary uploads.
func ExtractPublicIDFromURL(url string) string {
	matches := publicIDPattern.FindStringSubmatch(url)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}

// DeleteImage removes a previously uploaded asset. Best-effort: a stale
// asset left behind is preferable to failing the admin's update, so errors
// are logged and swallowed.
func DeleteImage(url string) {
	publicID := ExtractPublicIDFromURL(url)
	if publicID == "" {
		return
	}

	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		log.Printf("🔥 Failed to initialize Cloudinary for cleanup: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		log.Printf("🔥 Failed to delete Cloudinary asset %s: %v", publicID, err)
		return
	}
	log.Printf("✅ Deleted Cloudinary asset %s", publicID)
}
