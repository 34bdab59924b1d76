package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Felipesc023/completa-site/internal/database"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadBase64Image decodifica uma imagem enviada como data URI
// ("data:image/png;base64,...") e grava no bucket, devolvendo a URL
// pública do objeto.
func UploadBase64Image(ctx context.Context, dataURI, prefix string) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO não inicializado")
	}

	contentType, payload, err := splitDataURI(dataURI)
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("imagem base64 inválida: %v", err)
	}

	ext := "bin"
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		ext = parts[1]
	}
	objectName := fmt.Sprintf("%s/%s.%s", prefix, uuid.NewString(), ext)

	bucket := os.Getenv("MINIO_BUCKET")
	_, err = database.MinIO.PutObject(ctx, bucket, objectName, bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	return publicURL(bucket, objectName), nil
}

func splitDataURI(dataURI string) (contentType, payload string, err error) {
	if !strings.HasPrefix(dataURI, "data:") {
		// Aceita também o payload base64 cru, sem o prefixo data:
		return "image/jpeg", dataURI, nil
	}

	meta, rest, found := strings.Cut(dataURI[len("data:"):], ",")
	if !found {
		return "", "", fmt.Errorf("data URI malformada")
	}
	contentType = strings.TrimSuffix(meta, ";base64")
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", fmt.Errorf("apenas imagens são aceitas (recebido %s)", contentType)
	}
	return contentType, rest, nil
}

func publicURL(bucket, objectName string) string {
	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
}

// SignedImageURL gera uma URL temporária para um objeto do bucket.
// Usada quando o bucket não tem política de leitura pública.
func SignedImageURL(ctx context.Context, objectURL string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO não inicializado")
	}

	bucket := os.Getenv("MINIO_BUCKET")
	key := objectURL
	if idx := strings.Index(objectURL, "/"+bucket+"/"); idx >= 0 {
		key = objectURL[idx+len(bucket)+2:]
	}

	presigned, err := database.MinIO.PresignedGetObject(ctx, bucket, key, duration, url.Values{})
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}
