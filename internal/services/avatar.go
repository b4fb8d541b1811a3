package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/repos"
	"github.com/campusforge/campusforge-backend/internal/types"
)

// AvatarService renders an initials placeholder avatar for a profile,
// uploads it to the bucket and records the public URL on the profile row.
type AvatarService interface {
	CreateProfileAvatar(ctx context.Context, entityType, id, name string) error
	GenerateInitialsAvatar(name string) (bytes.Buffer, error)
}

type avatarService struct {
	db            *gorm.DB
	log           *logger.Logger
	studentRepo   repos.StudentRepo
	teacherRepo   repos.TeacherRepo
	bucketService BucketService
	bgColors      []color.NRGBA
	fontFace      font.Face
}

func NewAvatarService(db *gorm.DB, log *logger.Logger, studentRepo repos.StudentRepo, teacherRepo repos.TeacherRepo, bucketService BucketService) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	palettePath := os.Getenv("AVATAR_COLORS_PATH")
	if palettePath == "" {
		return nil, fmt.Errorf("missing env var AVATAR_COLORS_PATH")
	}
	bgColors, err := loadPaletteFromFile(palettePath)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar palette: %w", err)
	}
	if len(bgColors) == 0 {
		return nil, fmt.Errorf("avatar palette %q is empty", palettePath)
	}

	fontPath := os.Getenv("AVATAR_FONT_PATH")
	if fontPath == "" {
		return nil, fmt.Errorf("missing env var AVATAR_FONT_PATH")
	}
	serviceLog.Info("Loading avatar font", "font", fontPath)
	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar font: %w", err)
	}

	return &avatarService{
		db:            db,
		log:           serviceLog,
		studentRepo:   studentRepo,
		teacherRepo:   teacherRepo,
		bucketService: bucketService,
		bgColors:      bgColors,
		fontFace:      face,
	}, nil
}

func (as *avatarService) CreateProfileAvatar(ctx context.Context, entityType, id, name string) error {
	buf, err := as.GenerateInitialsAvatar(name)
	if err != nil {
		return err
	}

	// Versioned key so the CDN never serves a stale object.
	key := fmt.Sprintf("%s_avatar/%s/%d.png", entityType, id, time.Now().UnixNano())

	if err := as.bucketService.UploadFile(ctx, key, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to upload avatar: %w", err)
	}
	url := as.bucketService.GetPublicURL(key)

	switch entityType {
	case types.EntityStudent:
		if err := as.studentRepo.SetAvatar(ctx, nil, id, key, url); err != nil {
			return err
		}
	case types.EntityTeacher:
		if err := as.teacherRepo.SetAvatar(ctx, nil, id, key, url); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported avatar entity type %q", entityType)
	}
	return nil
}

func (as *avatarService) GenerateInitialsAvatar(name string) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	// Clip to circle
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	// Fill bg
	dc.SetColor(as.bgColors[rand.Intn(len(as.bgColors))])
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(name)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

// computeInitials takes the first letter of the first and last word of the
// full name. Single-word names produce a single initial.
func computeInitials(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return "?"
	}
	first := strings.ToUpper(parts[0][:1])
	if len(parts) == 1 {
		return first
	}
	return first + strings.ToUpper(parts[len(parts)-1][:1])
}

func loadPaletteFromFile(path string) ([]color.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file error: %w", err)
	}
	var hexes []string
	if err := yaml.Unmarshal(data, &hexes); err != nil {
		return nil, fmt.Errorf("yaml unmarshal error: %w", err)
	}
	colors := make([]color.NRGBA, 0, len(hexes))
	for _, h := range hexes {
		r, g, b, err := parseHexRGB(h)
		if err != nil {
			return nil, fmt.Errorf("invalid palette color %q: %w", h, err)
		}
		colors = append(colors, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return colors, nil
}

func parseHexRGB(s string) (r, g, b uint8, err error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("expected 6 hex chars")
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid hex")
	}
	return raw[0], raw[1], raw[2], nil
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}
