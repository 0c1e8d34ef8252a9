package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"github.com/team-maroon/recipify/config"
	"github.com/team-maroon/recipify/internal/model"
	"github.com/team-maroon/recipify/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

var categories = []model.Category{
	{Key: "breakfast", Label: "Breakfast"},
	{Key: "lunch", Label: "Lunch"},
	{Key: "dinner", Label: "Dinner"},
	{Key: "dessert", Label: "Dessert"},
	{Key: "snack", Label: "Snack"},
	{Key: "vegan", Label: "Vegan"},
	{Key: "vegetarian", Label: "Vegetarian"},
	{Key: "gluten_free", Label: "Gluten Free"},
	{Key: "spicy", Label: "Spicy"},
	{Key: "quick", Label: "Quick & Easy"},
}

var sampleTitles = []string{
	"Shakshuka", "Lemon Pasta", "Miso Ramen", "Chickpea Curry",
	"Banana Bread", "Beef Tacos", "Green Smoothie Bowl", "Mushroom Risotto",
	"Pad Thai", "Tomato Soup", "Falafel Wrap", "Berry Pancakes",
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	if err := database.Migrate(db); err != nil {
		panic(err)
	}

	nUsers := 20
	if s := os.Getenv("USERS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			nUsers = n
		}
	}
	nRecipes := 60
	if s := os.Getenv("RECIPES"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			nRecipes = n
		}
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
		panic(err)
	}
	var cats []model.Category
	check(db.Find(&cats).Error)

	hash := must(bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost))
	users := make([]model.User, nUsers)
	for i := range users {
		users[i] = model.User{
			ID:        uuid.New().String(),
			Username:  fmt.Sprintf("chef_%02d", i),
			Email:     fmt.Sprintf("chef%02d@example.com", i),
			Password:  string(hash),
			FirstName: "Chef",
			LastName:  fmt.Sprintf("Number%02d", i),
			IsPrivate: i%5 == 0,
		}
	}
	check(db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&users, 500).Error)

	recipes := make([]model.Recipe, nRecipes)
	links := make([]model.RecipeCategory, 0, nRecipes*2)
	for i := range recipes {
		author := users[rand.Intn(len(users))]
		title := sampleTitles[i%len(sampleTitles)]
		recipes[i] = model.Recipe{
			ID:           uuid.New().String(),
			AuthorID:     author.ID,
			Title:        fmt.Sprintf("%s #%d", title, i+1),
			Description:  "A weeknight favourite from " + author.Username + ".",
			Ingredients:  "- 2 cups flour\n- 1 tsp salt\n- 3 eggs",
			Instructions: "Mix everything. Cook until done.",
		}
		for _, c := range pick(cats, 1+rand.Intn(2)) {
			links = append(links, model.RecipeCategory{
				ID:         uuid.New().String(),
				RecipeID:   recipes[i].ID,
				CategoryID: c.ID,
			})
		}
	}
	check(db.CreateInBatches(&recipes, 500).Error)
	check(db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&links, 500).Error)

	ratings := make([]model.RecipeRating, 0, nRecipes*3)
	for _, r := range recipes {
		for _, u := range pick(users, rand.Intn(4)) {
			ratings = append(ratings, model.RecipeRating{
				ID:       uuid.New().String(),
				RecipeID: r.ID,
				UserID:   u.ID,
				Rating:   1 + rand.Intn(5),
			})
		}
	}
	if len(ratings) > 0 {
		check(db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&ratings, 500).Error)
	}

	fmt.Printf("seeded %d users, %d recipes, %d category links, %d ratings\n",
		len(users), len(recipes), len(links), len(ratings))
}

// pick returns n distinct random elements.
func pick[T any](src []T, n int) []T {
	if n > len(src) {
		n = len(src)
	}
	idx := rand.Perm(len(src))[:n]
	out := make([]T, n)
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}
