package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pantry-hub/internal/auth"
	"pantry-hub/internal/config"
	"pantry-hub/internal/database"
	"pantry-hub/internal/freshness"
	"pantry-hub/internal/model"
	"pantry-hub/internal/repository"
	"pantry-hub/internal/service"
)

// seedDemoData creates two demo accounts sharing one pantry.
// The pantry holds one item in each freshness state plus a short shopping list,
// so the first notifier run after seeding notifies both members.
// Password for both accounts: demo-password
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repository.NewUserRepository(pool, logger)
	pantryRepo := repository.NewPantryRepository(pool, logger)
	itemRepo := repository.NewItemRepository(pool, logger)
	shoppingRepo := repository.NewShoppingRepository(pool, logger)

	authService := service.NewAuthService(userRepo, auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), logger)
	pantryService := service.NewPantryService(pantryRepo, cfg.Pantry.MemberCap, logger)
	itemService := service.NewItemService(itemRepo, pantryRepo, logger)
	shoppingService := service.NewShoppingService(shoppingRepo, itemRepo, pantryRepo, logger)

	owner := account(ctx, authService, "demo@pantryhub.local", "Demo")
	partner := account(ctx, authService, "partner@pantryhub.local", "Partner")

	pantry, err := pantryService.Create(ctx, owner.ID, &model.CreatePantryRequest{
		Name:        "Demo Kitchen",
		Description: "Seeded demo pantry",
	})
	if err != nil {
		log.Fatalf("Failed to create pantry: %v", err)
	}
	if _, err := pantryService.Join(ctx, partner.ID, pantry.Code); err != nil {
		log.Fatalf("Failed to join pantry: %v", err)
	}

	day := func(offset int) string {
		return time.Now().AddDate(0, 0, offset).Format(freshness.DateLayout)
	}

	items := []model.CreateItemRequest{
		{Name: "Milk", Quantity: 1, Unit: "l", ExpiryDate: day(-1)},
		{Name: "Spinach", Quantity: 200, Unit: "g", ExpiryDate: day(2)},
		{Name: "Greek yoghurt", Quantity: 4, Unit: "pots", ExpiryDate: day(freshness.SoonThresholdDays)},
		{Name: "Cheddar", Quantity: 1, Unit: "block", ExpiryDate: day(21)},
		{Name: "Rice", Quantity: 2, Unit: "kg"},
	}
	for i := range items {
		item, err := itemService.Create(ctx, owner.ID, pantry.Code, &items[i])
		if err != nil {
			log.Fatalf("Failed to create item %s: %v", items[i].Name, err)
		}
		fmt.Printf("  %-14s %-14s %s\n", item.Name, item.Status, item.ExpiryDate)
	}

	shopping := []model.CreateShoppingItemRequest{
		{Name: "Eggs", Quantity: 12},
		{Name: "Bread", Quantity: 1, Unit: "loaf", Notes: "sourdough if they have it"},
	}
	for i := range shopping {
		if _, err := shoppingService.Create(ctx, partner.ID, pantry.Code, &shopping[i]); err != nil {
			log.Fatalf("Failed to create shopping entry %s: %v", shopping[i].Name, err)
		}
	}

	fmt.Printf("\nDemo pantry %q created with join code %s\n", pantry.Name, pantry.Code)
	fmt.Printf("Members: %s, %s\n", owner.Email, partner.Email)
}

// account registers a demo user, signing in instead when it already exists.
func account(ctx context.Context, authService service.AuthService, email, name string) *model.User {
	const password = "demo-password"

	resp, err := authService.Register(ctx, &model.RegisterRequest{Email: email, Password: password, DisplayName: name})
	if errors.Is(err, model.ErrEmailTaken) {
		resp, err = authService.Login(ctx, &model.LoginRequest{Email: email, Password: password})
	}
	if err != nil {
		log.Fatalf("Failed to prepare account %s: %v", email, err)
	}
	return resp.User
}
