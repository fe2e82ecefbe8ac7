package main

import (
	"context"
	"errors"
	"flag"

	"github.com/joho/godotenv"

	"github.com/recipebook/backend/config"
	"github.com/recipebook/backend/internal/database"
	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/pkg/logger"
)

type sampleRecipe struct {
	title       string
	timeMinutes int
	price       float64
	link        string
	tags        []string
	ingredients []string
}

var sampleRecipes = []sampleRecipe{
	{
		title:       "Thai red curry",
		timeMinutes: 35,
		price:       7.5,
		link:        "https://example.com/thai-red-curry",
		tags:        []string{"Dinner", "Spicy"},
		ingredients: []string{"Coconut milk", "Red curry paste", "Chicken"},
	},
	{
		title:       "Overnight oats",
		timeMinutes: 5,
		price:       2.0,
		tags:        []string{"Breakfast"},
		ingredients: []string{"Oats", "Milk", "Honey"},
	},
	{
		title:       "Posh beans on toast",
		timeMinutes: 10,
		price:       3.25,
		tags:        []string{"Lunch"},
		ingredients: []string{"Sourdough", "Cannellini beans", "Feta cheese"},
	},
	{
		title:       "Chocolate cheesecake",
		timeMinutes: 90,
		price:       12.0,
		link:        "https://example.com/cheesecake",
		tags:        []string{"Dessert"},
		ingredients: []string{"Cream cheese", "Dark chocolate", "Digestive biscuits"},
	},
}

// seed populates the database with a demo account and a handful of recipes
// so a fresh environment has something to browse.
func main() {
	email := flag.String("email", "demo@example.com", "email for the demo account")
	password := flag.String("password", "demo12345", "password for the demo account")
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()
	log := logger.Get()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	user, err := authService.Register(ctx, *email, *password, "Demo User")
	if errors.Is(err, service.ErrUserExists) {
		log.Info().Str("email", *email).Msg("demo account already exists, nothing to do")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create demo account")
	}

	tags := make(map[string]models.Tag)
	ingredients := make(map[string]models.Ingredient)

	for _, sample := range sampleRecipes {
		recipe := models.Recipe{
			Title:       sample.title,
			TimeMinutes: sample.timeMinutes,
			Price:       sample.price,
			Link:        sample.link,
			UserID:      user.ID,
		}
		for _, name := range sample.tags {
			tag, ok := tags[name]
			if !ok {
				tag = models.Tag{Name: name, UserID: user.ID}
				if err := db.Create(&tag).Error; err != nil {
					log.Fatal().Err(err).Str("tag", name).Msg("failed to create tag")
				}
				tags[name] = tag
			}
			recipe.Tags = append(recipe.Tags, tag)
		}
		for _, name := range sample.ingredients {
			ingredient, ok := ingredients[name]
			if !ok {
				ingredient = models.Ingredient{Name: name, UserID: user.ID}
				if err := db.Create(&ingredient).Error; err != nil {
					log.Fatal().Err(err).Str("ingredient", name).Msg("failed to create ingredient")
				}
				ingredients[name] = ingredient
			}
			recipe.Ingredients = append(recipe.Ingredients, ingredient)
		}

		if err := db.Create(&recipe).Error; err != nil {
			log.Fatal().Err(err).Str("title", sample.title).Msg("failed to create recipe")
		}
		log.Info().Str("title", recipe.Title).Msg("seeded recipe")
	}

	log.Info().
		Str("email", user.Email).
		Int("recipes", len(sampleRecipes)).
		Msg("seeding complete")
}
