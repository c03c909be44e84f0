package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/colaboreaza/backend/internal/config"
	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/logger"
	"github.com/colaboreaza/backend/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "colab123"

func moneyPtr(amount decimal.Decimal) *models.Money {
	m := models.NewMoneyFromDecimal(amount)
	return &m
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash seed password: %v", err)
	}

	// 添加演示用户（品牌方 + 达人）
	users := []models.User{
		{
			Email:    "brand@demo.colaboreaza.ro",
			Name:     "Atelier Demo SRL",
			UserType: constants.UserTypeBrand,
			Locale:   "ro-RO",
		},
		{
			Email:    "ana@demo.colaboreaza.ro",
			Name:     "Ana Popescu",
			UserType: constants.UserTypeInfluencer,
			Locale:   "ro-RO",
		},
		{
			Email:    "mihai@demo.colaboreaza.ro",
			Name:     "Mihai Ionescu",
			UserType: constants.UserTypeInfluencer,
			Locale:   "en-US",
		},
	}

	userIDs := map[string]uint{}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", u.Email).First(&existing).Error; err != nil {
			u.UserID = models.NewPublicID(constants.IDPrefixUser)
			u.PasswordHash = string(hash)
			u.Status = constants.UserStatusActive
			if err := models.DB.Create(&u).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", u.Email, err)
				continue
			}
			stdLog.Printf("Created user: %s", u.Email)
			userIDs[u.Email] = u.ID
		} else {
			stdLog.Printf("User already exists: %s", u.Email)
			userIDs[u.Email] = existing.ID
		}
	}

	// 添加达人档案
	profiles := []struct {
		Email   string
		Profile models.InfluencerProfile
	}{
		{
			Email: "ana@demo.colaboreaza.ro",
			Profile: models.InfluencerProfile{
				Username:       "ana.popescu",
				Bio:            "Lifestyle and beauty creator from Bucharest.",
				Niches:         models.StringArray{"beauty", "lifestyle"},
				Platforms:      models.StringArray{"instagram", "tiktok"},
				AudienceSize:   48000,
				EngagementRate: 4.2,
				PricePerPost:   moneyPtr(decimal.NewFromFloat(850)),
				Available:      true,
			},
		},
		{
			Email: "mihai@demo.colaboreaza.ro",
			Profile: models.InfluencerProfile{
				Username:       "mihai.tech",
				Bio:            "Tech reviews and gadget unboxings.",
				Niches:         models.StringArray{"tech"},
				Platforms:      models.StringArray{"youtube"},
				AudienceSize:   120000,
				EngagementRate: 3.1,
				PricePerPost:   moneyPtr(decimal.NewFromFloat(2200)),
				Available:      true,
			},
		},
	}

	for _, p := range profiles {
		userID, ok := userIDs[p.Email]
		if !ok {
			stdLog.Printf("Skip profile %s: user missing", p.Profile.Username)
			continue
		}
		var existing models.InfluencerProfile
		if err := models.DB.Where("username = ?", p.Profile.Username).First(&existing).Error; err != nil {
			profile := p.Profile
			profile.UserID = userID
			if err := models.DB.Create(&profile).Error; err != nil {
				stdLog.Printf("Failed to create profile %s: %v", profile.Username, err)
			} else {
				stdLog.Printf("Created profile: %s", profile.Username)
			}
		} else {
			stdLog.Printf("Profile already exists: %s", p.Profile.Username)
		}
	}

	// 添加演示合作
	brandID := userIDs["brand@demo.colaboreaza.ro"]
	deadline := time.Now().AddDate(0, 1, 0)
	collabs := []models.Collaboration{
		{
			BrandUserID:       brandID,
			BrandName:         "Atelier Demo SRL",
			Title:             "Spring skincare campaign",
			Description:       "Three Instagram posts and one reel featuring our spring skincare line.",
			Deliverables:      models.StringArray{"3 posts", "1 reel"},
			BudgetMin:         moneyPtr(decimal.NewFromFloat(500)),
			BudgetMax:         moneyPtr(decimal.NewFromFloat(1500)),
			Deadline:          &deadline,
			Platform:          "instagram",
			CreatorsNeeded:    2,
			CollaborationType: constants.CollabTypePaid,
			Status:            constants.CollabStatusActive,
			PaymentStatus:     constants.PaymentStatusNone,
			IsPublic:          true,
		},
		{
			BrandUserID:       brandID,
			BrandName:         "Atelier Demo SRL",
			Title:             "Product seeding for tech reviewers",
			Description:       "Honest review of our new smart lamp, product provided for free.",
			Deliverables:      models.StringArray{"1 video review"},
			Platform:          "youtube",
			CreatorsNeeded:    3,
			CollaborationType: constants.CollabTypeBarter,
			Status:            constants.CollabStatusActive,
			PaymentStatus:     constants.PaymentStatusNone,
			IsPublic:          true,
		},
	}

	for _, collab := range collabs {
		if collab.BrandUserID == 0 {
			stdLog.Printf("Skip collaboration %s: brand user missing", collab.Title)
			continue
		}
		var existing models.Collaboration
		if err := models.DB.Where("brand_user_id = ? AND title = ?", collab.BrandUserID, collab.Title).First(&existing).Error; err != nil {
			collab.CollabID = models.NewPublicID(constants.IDPrefixCollab)
			if err := models.DB.Create(&collab).Error; err != nil {
				stdLog.Printf("Failed to create collaboration %s: %v", collab.Title, err)
			} else {
				stdLog.Printf("Created collaboration: %s", collab.Title)
			}
		} else {
			stdLog.Printf("Collaboration already exists: %s", collab.Title)
		}
	}

	// 初始化平台费率与站点配置
	if err := models.InitDefaultSettings(cfg.Escrow.DefaultCommissionRate); err != nil {
		stdLog.Printf("Failed to init default settings: %v", err)
	}

	siteConfig := map[string]interface{}{
		"contact": map[string]string{
			"email": "contact@colaboreaza.ro",
		},
	}
	var setting models.Setting
	if err := models.DB.Where("key = ?", constants.SettingKeySiteConfig).First(&setting).Error; err != nil {
		setting = models.Setting{
			Key:       constants.SettingKeySiteConfig,
			ValueJSON: models.JSON(siteConfig),
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("Failed to create site config: %v", err)
		} else {
			stdLog.Println("Created site config")
		}
	} else {
		stdLog.Println("Site config already exists")
	}

	fmt.Println("\nSeed data ready:")
	fmt.Println("- 1 brand, 2 influencers (password: " + seedPassword + ")")
	fmt.Println("- 2 influencer profiles")
	fmt.Println("- 2 open collaborations")
	fmt.Println("- commission rate and site configuration")
	fmt.Println(strings.Repeat("-", 40))
}
