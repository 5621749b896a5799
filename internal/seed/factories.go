package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"filmgraph/internal/models"
	"filmgraph/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// Reference catalog sizes from the embedded catalog. Films pick ids in these
// ranges.
const (
	genreCatalogSize = 6
	mpaCatalogSize   = 5
)

// Factory builds domain entities and persists them through the service layer.
type Factory struct {
	films *service.FilmService
	users *service.UserService
	rand  *rand.Rand
	faker *gofakeit.Faker
}

// NewFactory creates a new Factory bound to the provided services.
func NewFactory(films *service.FilmService, users *service.UserService, opts Options) *Factory {
	seedVal := opts.Seed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}
	return &Factory{
		films: films,
		users: users,
		rand:  rand.New(rand.NewSource(seedVal)),
		faker: gofakeit.New(seedVal),
	}
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	birthday := f.faker.DateRange(
		time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2007, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	user := &models.User{
		Email:    f.faker.Email(),
		Login:    fmt.Sprintf("%s%d", f.faker.Username(), f.faker.Number(100, 999)),
		Name:     f.faker.Name(),
		Birthday: models.NewDate(birthday.Year(), birthday.Month(), birthday.Day()),
	}

	for _, override := range overrides {
		override(user)
	}

	return f.users.CreateUser(ctx, user)
}

// CreateFilm constructs and persists a sample film with a random MPA rating
// and one or two genres from the reference catalog.
func (f *Factory) CreateFilm(ctx context.Context, overrides ...func(*models.Film)) (*models.Film, error) {
	release := f.faker.DateRange(
		time.Date(1930, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	)

	mpaID := uint(f.faker.Number(1, mpaCatalogSize))
	genres := []models.Genre{{ID: uint(f.faker.Number(1, genreCatalogSize))}}
	if f.rand.Intn(2) == 0 {
		genres = append(genres, models.Genre{ID: uint(f.faker.Number(1, genreCatalogSize))})
	}

	film := &models.Film{
		Name:        f.faker.MovieName(),
		Description: truncateRunes(f.faker.Sentence(12), 200),
		ReleaseDate: models.NewDate(release.Year(), release.Month(), release.Day()),
		Duration:    f.faker.Number(60, 200),
		Mpa:         &models.MpaRating{ID: mpaID},
		Genres:      genres,
	}

	for _, override := range overrides {
		override(film)
	}

	return f.films.CreateFilm(ctx, film)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
