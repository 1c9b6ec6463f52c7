package repository

import "context"

// ReportPublisher copies generated report files to a remote destination.
type ReportPublisher interface {
	// Publish envia o arquivo local e retorna a URI de destino.
	Publish(ctx context.Context, localPath string) (string, error)
}
