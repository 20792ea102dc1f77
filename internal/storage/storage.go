package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/rs/zerolog/log"
)

// Storage writes a named file and returns where it can be fetched from.
// Saving under an existing name replaces the previous content.
type Storage interface {
	SaveFile(ctx context.Context, filename string, body []byte) (string, error)
}

type LocalStorage struct {
	uploadDir string
}

type SpacesStorage struct {
	client   s3iface.S3API
	bucket   string
	cdnURL   string
	endpoint string
}

func NewLocalStorage(uploadDir string) *LocalStorage {
	return &LocalStorage{uploadDir: uploadDir}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client:   s3.New(sess),
		bucket:   bucket,
		cdnURL:   cdnURL,
		endpoint: endpoint,
	}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// normalizeFilename replaces spaces and drops anything outside
// [a-zA-Z0-9_-] from the base name. The result is stable for a given input
// so a published feed keeps its URL.
func normalizeFilename(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	baseName := strings.TrimSuffix(filepath.Base(originalFilename), filepath.Ext(originalFilename))

	baseName = strings.ReplaceAll(baseName, " ", "_")
	baseName = unsafeChars.ReplaceAllString(baseName, "")
	if baseName == "" {
		baseName = "file"
	}
	return baseName + ext
}

func (ls *LocalStorage) SaveFile(_ context.Context, filename string, body []byte) (string, error) {
	normalizedFilename := normalizeFilename(filename)
	log.Debug().Str("original", filename).Str("normalized", normalizedFilename).Msg("file name normalized")

	if err := os.MkdirAll(ls.uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	uploadPath := filepath.Join(ls.uploadDir, normalizedFilename)
	tmp := uploadPath + ".tmp"
	if err := os.WriteFile(tmp, body, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	// rename so readers never see a half-written feed
	if err := os.Rename(tmp, uploadPath); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return uploadPath, nil
}

func (ss *SpacesStorage) SaveFile(ctx context.Context, filename string, body []byte) (string, error) {
	normalizedFilename := normalizeFilename(filename)
	log.Debug().Str("original", filename).Str("normalized", normalizedFilename).Msg("file name normalized")

	key := fmt.Sprintf("feeds/%s", normalizedFilename)

	_, err := ss.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(ss.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(getContentType(normalizedFilename)),
		CacheControl: aws.String("no-cache"),
		ACL:          aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload file to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	cdnURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(ss.cdnURL, "/"), key)
	return cdnURL, nil
}

func getContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ics":
		return "text/calendar; charset=utf-8"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
