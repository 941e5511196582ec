package video

import (
	"fmt"

	"roboshorts/config"

	"github.com/h2non/bimg"
)

// optimizeThumbnail resizes and re-encodes the extracted frame in place so
// it stays comfortably under the upload provider's thumbnail limits.
func optimizeThumbnail(path string) error {
	buffer, err := bimg.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read thumbnail: %w", err)
	}

	size, err := bimg.NewImage(buffer).Size()
	if err != nil {
		return fmt.Errorf("failed to get thumbnail dimensions: %w", err)
	}

	opts := bimg.Options{
		Quality: config.ThumbnailQuality,
		Type:    bimg.JPEG,
	}
	if size.Width > config.ThumbnailWidth {
		opts.Width = config.ThumbnailWidth
		opts.Height = size.Height * config.ThumbnailWidth / size.Width
	}

	processed, err := bimg.NewImage(buffer).Process(opts)
	if err != nil {
		return fmt.Errorf("failed to process thumbnail: %w", err)
	}
	return bimg.Write(path, processed)
}
