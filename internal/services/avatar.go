package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/types"
)

const avatarSize = 512

// avatarPalette is the fixed background palette. The picked color is
// stored on the user so regenerated avatars stay stable.
var avatarPalette = []color.NRGBA{
	{R: 0x2F, G: 0x6F, B: 0xED, A: 0xFF},
	{R: 0x0E, G: 0x9F, B: 0x6E, A: 0xFF},
	{R: 0xD9, G: 0x48, B: 0x4A, A: 0xFF},
	{R: 0x9B, G: 0x59, B: 0xB6, A: 0xFF},
	{R: 0xE6, G: 0x7E, B: 0x22, A: 0xFF},
	{R: 0x16, G: 0xA0, B: 0x85, A: 0xFF},
	{R: 0x34, G: 0x49, B: 0x5E, A: 0xFF},
}

type AvatarService interface {
	// CreateUserAvatar renders an initials avatar to local media storage
	// and sets the user's avatar fields. It does not persist the user.
	CreateUserAvatar(ctx context.Context, user *types.User) error
	// ReplaceUserAvatarFromImage processes an uploaded image into the
	// standard avatar shape and stores it for the user.
	ReplaceUserAvatarFromImage(ctx context.Context, user *types.User, raw []byte) error
}

type avatarService struct {
	log        *logger.Logger
	mediaDir   string
	publicBase string
	fontFace   font.Face
}

// NewAvatarService loads the optional initials font and prepares the media
// directory. AVATAR_FONT is required because gg cannot measure text
// without a face; when unset the caller should run without avatars.
func NewAvatarService(log *logger.Logger, mediaDir, publicBase string) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	if strings.TrimSpace(mediaDir) == "" {
		return nil, fmt.Errorf("media dir is required")
	}
	if err := os.MkdirAll(filepath.Join(mediaDir, "avatar"), 0o755); err != nil {
		return nil, fmt.Errorf("could not create media dir: %w", err)
	}

	fontPath := os.Getenv("AVATAR_FONT")
	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("env var AVATAR_FONT is empty")
	}
	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar font: %w", err)
	}

	return &avatarService{
		log:        serviceLog,
		mediaDir:   mediaDir,
		publicBase: strings.TrimRight(publicBase, "/"),
		fontFace:   face,
	}, nil
}

func (as *avatarService) CreateUserAvatar(ctx context.Context, user *types.User) error {
	if user == nil || user.ID == uuid.Nil {
		return fmt.Errorf("user required")
	}
	as.ensureAvatarColor(user)

	dc := gg.NewContext(avatarSize, avatarSize)
	dc.DrawCircle(float64(avatarSize)/2, float64(avatarSize)/2, float64(avatarSize)/2)
	dc.Clip()

	dc.SetColor(parsePaletteHex(user.AvatarColor))
	dc.DrawRectangle(0, 0, float64(avatarSize), float64(avatarSize))
	dc.Fill()

	initials := computeInitials(user.FirstName, user.LastName)
	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(avatarSize)/2, float64(avatarSize)/2
	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return as.storeAvatar(user, buf.Bytes())
}

func (as *avatarService) ReplaceUserAvatarFromImage(ctx context.Context, user *types.User, raw []byte) error {
	if user == nil || user.ID == uuid.Nil {
		return fmt.Errorf("user required")
	}

	processed, err := processUploadedAvatar(raw, avatarSize)
	if err != nil {
		return err
	}
	return as.storeAvatar(user, processed.Bytes())
}

// storeAvatar writes the new file under a versioned name, points the user
// at it, then best-effort deletes the previous file.
func (as *avatarService) storeAvatar(user *types.User, data []byte) error {
	oldPath := strings.TrimSpace(user.AvatarPath)

	rel := filepath.Join("avatar", fmt.Sprintf("%s_%d.png", user.ID.String(), time.Now().UnixNano()))
	abs := filepath.Join(as.mediaDir, rel)
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("failed to write avatar: %w", err)
	}

	user.AvatarPath = rel
	user.AvatarURL = as.publicBase + "/" + filepath.ToSlash(rel)

	if oldPath != "" && oldPath != rel {
		if err := os.Remove(filepath.Join(as.mediaDir, oldPath)); err != nil && !os.IsNotExist(err) {
			as.log.Warn("failed to delete old avatar (ignored)", "path", oldPath, "error", err)
		}
	}
	return nil
}

func processUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	// Center-crop to square
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}
	return out, nil
}

func (as *avatarService) ensureAvatarColor(user *types.User) {
	if strings.TrimSpace(user.AvatarColor) != "" {
		return
	}
	pick := avatarPalette[rand.Intn(len(avatarPalette))]
	user.AvatarColor = fmt.Sprintf("#%02X%02X%02X", pick.R, pick.G, pick.B)
}

func parsePaletteHex(hexStr string) color.NRGBA {
	s := strings.TrimPrefix(strings.TrimSpace(hexStr), "#")
	if len(s) != 6 {
		return avatarPalette[0]
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return avatarPalette[0]
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

func computeInitials(first, last string) string {
	fInit := "?"
	if len(first) > 0 {
		fInit = strings.ToUpper(first[:1])
	}
	lInit := "?"
	if len(last) > 0 {
		lInit = strings.ToUpper(last[:1])
	}
	return fInit + lInit
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
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
