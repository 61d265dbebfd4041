// services/image_service.go
package services

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gewnthar/countries/models"
)

const (
	imageWidth  = 800
	imageHeight = 600
)

var (
	backgroundColor = color.RGBA{255, 255, 255, 255}
	textColor       = color.RGBA{0, 0, 0, 255}
	headerColor     = color.RGBA{41, 128, 185, 255}
	lineColor       = color.RGBA{200, 200, 200, 255}
)

// ImageService renders the summary PNG into the cache directory. The file
// is only ever (re)written by a refresh; reads serve whatever is on disk.
type ImageService struct {
	imagePath string
}

func NewImageService(imagePath string) *ImageService {
	return &ImageService{imagePath: imagePath}
}

// GenerateSummaryImage draws the fixed-size summary: total count, top
// countries by estimated GDP and the refresh timestamp. Any previous image
// is overwritten.
func (s *ImageService) GenerateSummaryImage(totalCountries int64, topCountries []models.Country, lastRefreshed time.Time) error {
	img := image.NewRGBA(image.Rect(0, 0, imageWidth, imageHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{backgroundColor}, image.Point{}, draw.Src)

	y := 50
	drawTextCentered(img, y, headerColor, "Country Currency Summary")
	y += 40

	drawHorizontalLine(img, y)
	y += 40

	drawTextCentered(img, y, textColor, fmt.Sprintf("Total Countries: %d", totalCountries))
	y += 50

	if len(topCountries) > 0 {
		drawTextCentered(img, y, headerColor, "Top 5 Countries by Estimated GDP")
		y += 40

		for i, country := range topCountries {
			gdp := "N/A"
			if country.EstimatedGDP != nil {
				gdp = fmt.Sprintf("$%.2f", *country.EstimatedGDP)
			}
			drawText(img, 100, y, textColor, fmt.Sprintf("%d. %s: %s", i+1, country.Name, gdp))
			y += 35
		}
	}

	y += 20
	drawHorizontalLine(img, y)
	y += 40

	drawTextCentered(img, y, textColor, fmt.Sprintf("Last Refreshed: %s", lastRefreshed.UTC().Format("2006-01-02 15:04:05 UTC")))

	if err := os.MkdirAll(filepath.Dir(s.imagePath), 0755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}
	file, err := os.Create(s.imagePath)
	if err != nil {
		return fmt.Errorf("failed to create image file %s: %w", s.imagePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode summary image: %w", err)
	}
	return nil
}

// Exists reports whether a previously generated image is on disk.
func (s *ImageService) Exists() bool {
	_, err := os.Stat(s.imagePath)
	return err == nil
}

// Path returns the location of the summary image.
func (s *ImageService) Path() string {
	return s.imagePath
}

func drawText(img *image.RGBA, x, y int, c color.RGBA, text string) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

func drawTextCentered(img *image.RGBA, y int, c color.RGBA, text string) {
	width := font.MeasureString(basicfont.Face7x13, text).Ceil()
	drawText(img, (imageWidth-width)/2, y, c, text)
}

func drawHorizontalLine(img *image.RGBA, y int) {
	for x := 50; x < imageWidth-50; x++ {
		img.Set(x, y, lineColor)
		img.Set(x, y+1, lineColor)
	}
}
