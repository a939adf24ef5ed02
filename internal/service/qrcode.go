package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"pydenweb/internal/doctype"
	"pydenweb/internal/model"
	"pydenweb/internal/qr"
	"pydenweb/internal/repository"
	"pydenweb/internal/storage"
)

var (
	ErrMissingFields = errors.New("type, description and id are required")
	ErrInvalidType   = errors.New("invalid document type")
	ErrDuplicate     = errors.New("a QR code already exists for this type and id")
	ErrNotFound      = errors.New("record not found")
)

// IssueResult is returned on successful issuance.
type IssueResult struct {
	Record        *model.QRCode `json:"record"`
	ValidationURL string        `json:"validation_url"`
	ImagePath     string        `json:"qr_image_url"`
}

// QRCodeService defines the use cases around issued QR records.
type QRCodeService interface {
	// Issue validates input, persists a new record with a fresh public
	// identifier and stores a PNG encoding of its validation URL.
	Issue(ctx context.Context, rawType, description, externalID string) (*IssueResult, error)

	// List returns records for the admin listing, newest first, capped at 200.
	// rawType is normalized before filtering; search substring-matches.
	List(ctx context.Context, rawType, search string) ([]model.QRCode, error)

	// Validate resolves a public identifier to its record.
	Validate(ctx context.Context, publicID string) (*model.QRCode, error)

	// Image streams the stored PNG for a public identifier.
	Image(ctx context.Context, publicID string) (io.ReadCloser, storage.ObjectInfo, error)
}

// qrCodeService is a concrete implementation of QRCodeService.
type qrCodeService struct {
	store   storage.Storage
	repo    repository.QRCodeRepository
	baseURL string

	// encodePNG is swappable in tests.
	encodePNG func(string) ([]byte, error)
}

// NewQRCodeService constructs a new QRCodeService. baseURL is the public URL
// prefix encoded into validation links, without a trailing slash.
func NewQRCodeService(store storage.Storage, repo repository.QRCodeRepository, baseURL string) QRCodeService {
	return &qrCodeService{
		store:     store,
		repo:      repo,
		baseURL:   strings.TrimRight(baseURL, "/"),
		encodePNG: qr.EncodePNG,
	}
}

// ImageKey is the object-storage key holding the PNG for a public identifier.
func ImageKey(publicID string) string {
	return "qrcodes/" + publicID + ".png"
}

// ImagePath is the public HTTP path the PNG is served from.
func ImagePath(publicID string) string {
	return "/img/qrcodes/" + publicID + ".png"
}

func (s *qrCodeService) Issue(ctx context.Context, rawType, description, externalID string) (*IssueResult, error) {
	description = strings.TrimSpace(description)
	externalID = strings.TrimSpace(externalID)
	if strings.TrimSpace(rawType) == "" || description == "" || externalID == "" {
		return nil, ErrMissingFields
	}

	typ := doctype.Normalize(rawType)
	if !doctype.Allowed(typ) {
		return nil, ErrInvalidType
	}

	// The public identifier is crypto-random and never derived from the
	// record; collisions are treated as negligible.
	publicID := uuid.NewString()

	rec, err := s.repo.Create(ctx, &model.QRCode{
		Type:        typ,
		Description: description,
		ExternalID:  externalID,
		PublicID:    publicID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("save record: %w", err)
	}

	validationURL := s.baseURL + "/validar/" + publicID

	// The record is already persisted; a failure from here on leaves it
	// without an image rather than rolling it back.
	png, err := s.encodePNG(validationURL)
	if err != nil {
		return nil, fmt.Errorf("encode qr image: %w", err)
	}
	_, err = s.store.Put(ctx, ImageKey(publicID), bytes.NewReader(png), storage.PutObjectOptions{
		Size:        int64(len(png)),
		ContentType: "image/png",
		Metadata:    map[string]string{"public-id": publicID},
	})
	if err != nil {
		// An interrupted upload can leave a partial object under the key.
		_ = s.store.Delete(ctx, ImageKey(publicID))
		return nil, fmt.Errorf("store qr image: %w", err)
	}

	return &IssueResult{
		Record:        rec,
		ValidationURL: validationURL,
		ImagePath:     ImagePath(publicID),
	}, nil
}

func (s *qrCodeService) List(ctx context.Context, rawType, search string) ([]model.QRCode, error) {
	f := repository.ListFilter{Search: strings.TrimSpace(search)}
	if t := strings.TrimSpace(rawType); t != "" {
		f.Type = doctype.Normalize(t)
	}
	return s.repo.List(ctx, f)
}

func (s *qrCodeService) Validate(ctx context.Context, publicID string) (*model.QRCode, error) {
	// public_id is a UUID column; a malformed token can never match a record
	// and would make the query itself fail.
	if _, err := uuid.Parse(publicID); err != nil {
		return nil, ErrNotFound
	}
	rec, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *qrCodeService) Image(ctx context.Context, publicID string) (io.ReadCloser, storage.ObjectInfo, error) {
	return s.store.Get(ctx, ImageKey(publicID))
}
