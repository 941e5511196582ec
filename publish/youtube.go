package publish

import (
	"context"
	"fmt"
	"log"
	"os"

	"roboshorts/config"
	"roboshorts/types"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Result reports what happened to one upload. Skipped means the publisher
// ran in dry-run mode because credentials were absent.
type Result struct {
	VideoID string
	Skipped bool
}

// Publisher uploads rendered videos to YouTube. With incomplete
// credentials every publish is a logged no-op, which lets video generation
// be tested before the channel is wired up.
type Publisher struct {
	creds config.YouTubeCredentials
}

// NewPublisher builds a publisher from the given credentials.
func NewPublisher(creds config.YouTubeCredentials) *Publisher {
	return &Publisher{creds: creds}
}

// Publish uploads the video and then its thumbnail. A thumbnail failure is
// reported but does not undo or fail the publish.
func (p *Publisher) Publish(ctx context.Context, res types.RenderResult) (Result, error) {
	if !p.creds.Configured() {
		log.Printf("YouTube credentials not set; skipping upload. Video saved locally: %s", res.VideoPath)
		return Result{Skipped: true}, nil
	}

	service, err := p.service(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("unable to create YouTube service: %w", err)
	}

	file, err := os.Open(res.VideoPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat video file: %w", err)
	}
	log.Printf("Uploading: %s (%.2f MB)", res.VideoPath, float64(info.Size())/(1024*1024))

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       truncate(res.Title, config.MaxTitleLength),
			Description: truncate(res.Description, config.MaxDescriptionLength),
			Tags:        res.Tags,
			CategoryId:  config.YouTubeCategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: config.YouTubePrivacyStatus,
		},
	}

	call := service.Videos.Insert([]string{"snippet", "status"}, video).Media(file)
	response, err := call.Do()
	if err != nil {
		return Result{}, fmt.Errorf("failed to upload video: %w", err)
	}

	videoID := response.Id
	log.Printf("Uploaded! https://youtube.com/shorts/%s", videoID)

	if res.ThumbnailPath != "" {
		if err := p.setThumbnail(service, videoID, res.ThumbnailPath); err != nil {
			log.Printf("Thumbnail set failed: %v", err)
		} else {
			log.Println("Thumbnail set.")
		}
	}

	return Result{VideoID: videoID}, nil
}

// service builds an authenticated client from the refresh-token flow.
func (p *Publisher) service(ctx context.Context) (*youtube.Service, error) {
	conf := &oauth2.Config{
		ClientID:     p.creds.ClientID,
		ClientSecret: p.creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope},
	}
	token := &oauth2.Token{RefreshToken: p.creds.RefreshToken}
	client := conf.Client(ctx, token)

	return youtube.NewService(ctx, option.WithHTTPClient(client))
}

func (p *Publisher) setThumbnail(service *youtube.Service, videoID, thumbnailPath string) error {
	file, err := os.Open(thumbnailPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = service.Thumbnails.Set(videoID).Media(file).Do()
	return err
}

// truncate limits s to max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
