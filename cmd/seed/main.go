package main

import (
	"context"
	"fmt"
	"time"

	"graceshopper/internal/config"
	"graceshopper/internal/database"
	"graceshopper/internal/domain"
	"graceshopper/internal/logger"
	"graceshopper/internal/repository"
	"graceshopper/internal/service"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedProduct struct {
	name        string
	description string
	price       int64
	imageURL    string
	category    string
}

type seedUser struct {
	first    string
	last     string
	email    string
	username string
	password string
	imageURL string
	isAdmin  bool
}

type seedReview struct {
	title   string
	content string
	stars   int
	user    string
	product string
}

type seedOrder struct {
	key    string
	status domain.OrderStatus
	user   string
}

type seedOrderProduct struct {
	order    string
	product  string
	price    int64
	quantity int
}

var seedProducts = []seedProduct{
	{"ScamWOW!", "it is just a towel", 100, "https://www.monarchbrands.com/wp-content/uploads/2019/07/Microfiber-Cloth-Stack-2.jpg", "Household"},
	{"Dog armor", "armor for dogs", 500, "https://technabob.com/blog/wp-content/uploads/2017/06/pet-samurai-5.jpg", "Pets"},
	{"Oxygen Fresh", "environmentally friendly wash", 150, "https://cdn.pixabay.com/photo/2014/04/03/09/57/bucket-309439_960_720.png", "Household"},
	{"G-G-G-Gia!", "Watch the hair on your statue grow. Just add water!", 800, "https://www.lilyardor.com/wp-content/uploads/2019/04/IMG_1133-1080x675.jpg", "Garden"},
	{"Snuggle", "who needs other people when you have fabric?", 350, "https://hip2save.com/wp-content/uploads/2020/05/woman-wearable-blanket-.jpg", "Clothes"},
	{"Lunar Boots", "Reach for the stars by jumping in the air like you are a 50s kid", 1000, "https://images-na.ssl-images-amazon.com/images/I/71VD%2BMbQcrL._AC_SX425_.jpg", "Clothes"},
	{"Joe Backman BBQ", "Cook things", 1850, "https://images-na.ssl-images-amazon.com/images/I/81YSZkz4wzL._AC_SL1500_.jpg", "Cooking"},
	{"Slam Slice", "it cuts food", 120, "https://images-na.ssl-images-amazon.com/images/I/512X9AqCWjL._AC_SL1000_.jpg", "Cooking"},
	{"Drink Weight", "work out, and stay hydrated", 200, "https://images-na.ssl-images-amazon.com/images/I/61UDS9og1qL._AC_SX425_.jpg", "Health"},
	{"Can-of-Paint", "spraypaint your bald spot to look... better?", 60, "https://cdn.kitchencabinetkings.com/media/catalog/product/cache/1/image/650x650/9df78eab33525d08d6e5fb8d27136e95/a/e/aerosol-spray-can_3.jpg", "Clothes"},
	{"Waterball", "so anyways, here is waterball", 145, "https://i.ytimg.com/vi/IPK2m0qRZx4/sddefault.jpg", "Kids"},
	{"Food Bags", "you put your food in them", 100, "https://images-na.ssl-images-amazon.com/images/I/61q7mny4b3L._AC_SL1200_.jpg", "Household"},
	{"Prescient", "prevents zits", 900, "https://i.ytimg.com/vi/dHZ7h4F8fzQ/maxresdefault.jpg", "Health"},
	{"Heath", "chemical spray for immitating nature", 110, "https://shop.harborfreight.com/media/catalog/product/cache/1/image/9df78eab33525d08d6e5fb8d27136e95/6/1/61455_W3.jpg", "Household"},
	{"iCushion", "its just a soft pillow", 200, "https://www.fairfieldstore.com/images/products/lrg/fairfield-store-ffi-108-s-down-alternative-eco-pillow_lrg.jpg", "Household"},
}

var seedUsers = []seedUser{
	{"Guest", "User", "guest@graceshopper.com", "Guest", "Guest123", "", false},
	{"Al", "Bert", "albert@bert.org", "albert", "bertie99", "", false},
	{"Sandra", "Butter", "sandra@sandie.net", "sandra", "2sandy4me", "", false},
	{"Josh", "Glam", "josh@glam.com", "glamgal", "soglam", "", false},
	{"Austin", "Thomas", "austin.thomas130@gmail.com", "Austy", "12345678", "", true},
	{"Tim", "Galvez", "timsemail@gmail.com", "Timo", "12345678", "", true},
	{"Nick", "Swanson", "nicksemail@gmail.com", "Overlord", "12345678", "", true},
}

var seedReviews = []seedReview{
	{"Best towels ever", "I bought 100 of these and I'll never go back.", 5, "albert", "ScamWOW!"},
	{"They're okay.", "I really only bought them for the colors. They do the job though.", 3, "glamgal", "ScamWOW!"},
	{"Sickest on the market", "My dog looks like a total stud now.", 5, "sandra", "Dog armor"},
	{"I'm dating a blanket", "Seriously - who needs a spouse?", 5, "sandra", "Snuggle"},
	{"Jump higher, run faster", "Dude....DUDE! THESE ARE SICK.", 5, "albert", "Lunar Boots"},
}

var seedOrders = []seedOrder{
	{"albert-open", domain.StatusCreated, "albert"},
	{"sandra-cancelled", domain.StatusCancelled, "sandra"},
	{"glamgal-done", domain.StatusCompleted, "glamgal"},
	{"austy-open", domain.StatusCreated, "Austy"},
	{"austy-done", domain.StatusCompleted, "Austy"},
}

var seedOrderProducts = []seedOrderProduct{
	{"austy-open", "ScamWOW!", 100, 1},
	{"austy-open", "Dog armor", 1000, 2},
	{"austy-done", "ScamWOW!", 300, 3},
	{"austy-done", "Oxygen Fresh", 70, 10},
}

func main() {
	// Load environment variables from .env if present
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Seeding database", zap.String("env", cfg.Server.Env))

	dbService, err := database.New(cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbService.Close()

	db := dbService.DB()

	// Drop everything and rebuild the schema before loading fixtures
	if err := database.Rebuild(db, "migrations", log); err != nil {
		log.Fatal("Failed to rebuild schema", zap.Error(err))
	}

	ctx := context.Background()

	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderProductRepo := repository.NewOrderProductRepository(db)

	products := make(map[string]uuid.UUID, len(seedProducts))
	now := time.Now()
	for _, p := range seedProducts {
		created, err := productRepo.Create(ctx, &domain.Product{
			ID:          uuid.New(),
			Name:        p.name,
			Description: p.description,
			Price:       decimal.NewFromInt(p.price),
			ImageURL:    p.imageURL,
			InStock:     true,
			Category:    p.category,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			log.Fatal("Failed to create product", zap.String("name", p.name), zap.Error(err))
		}
		products[p.name] = created.ID
	}
	log.Info("Created products", zap.Int("count", len(products)))

	users := make(map[string]uuid.UUID, len(seedUsers))
	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), service.BcryptCost)
		if err != nil {
			log.Fatal("Failed to hash password", zap.String("username", u.username), zap.Error(err))
		}
		user := &domain.User{
			ID:           uuid.New(),
			FirstName:    u.first,
			LastName:     u.last,
			Email:        u.email,
			Username:     u.username,
			PasswordHash: string(hash),
			ImageURL:     u.imageURL,
			IsAdmin:      u.isAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatal("Failed to create user", zap.String("username", u.username), zap.Error(err))
		}
		users[u.username] = user.ID
	}
	log.Info("Created users", zap.Int("count", len(users)))

	for _, rv := range seedReviews {
		review := &domain.Review{
			ID:        uuid.New(),
			Title:     rv.title,
			Content:   rv.content,
			Stars:     rv.stars,
			UserID:    users[rv.user],
			ProductID: products[rv.product],
			CreatedAt: now,
		}
		if err := reviewRepo.Create(ctx, review); err != nil {
			log.Fatal("Failed to create review", zap.String("title", rv.title), zap.Error(err))
		}
	}
	log.Info("Created reviews", zap.Int("count", len(seedReviews)))

	orders := make(map[string]uuid.UUID, len(seedOrders))
	for _, o := range seedOrders {
		order := &domain.Order{
			ID:         uuid.New(),
			Status:     o.status,
			UserID:     users[o.user],
			DatePlaced: now,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			log.Fatal("Failed to create order", zap.String("user", o.user), zap.Error(err))
		}
		orders[o.key] = order.ID
	}
	log.Info("Created orders", zap.Int("count", len(orders)))

	for _, op := range seedOrderProducts {
		item := &domain.OrderProduct{
			ID:        uuid.New(),
			OrderID:   orders[op.order],
			ProductID: products[op.product],
			Price:     decimal.NewFromInt(op.price),
			Quantity:  op.quantity,
		}
		if _, err := orderProductRepo.AddProductToOrder(ctx, item); err != nil {
			log.Fatal("Failed to add product to order", zap.String("product", op.product), zap.Error(err))
		}
	}
	log.Info("Created order products", zap.Int("count", len(seedOrderProducts)))

	log.Info("Seeding complete")
}
