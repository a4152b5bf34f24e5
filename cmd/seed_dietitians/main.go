package main

import (
	"context"
	"fmt"
	"time"

	"github.com/raushankrgupta/nutriwise/config"
	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/store"
	"github.com/raushankrgupta/nutriwise/utils"
	"github.com/rs/zerolog/log"
)

type seed struct {
	name           string
	specialization string
	experience     int
	rating         float64
	bio            string
	image          string
	hours          []string
}

var dietitians = []seed{
	{
		name:           "Dr. Priya Singh",
		specialization: "Clinical Nutritionist & Dietitian",
		experience:     8,
		rating:         4.8,
		bio:            "Specialized in weight management, diabetes care, and sports nutrition. Certified clinical nutritionist with expertise in personalized diet plans.",
		image:          "https://images.unsplash.com/photo-1582750433449-648ed127bb54?w=400",
		hours:          []string{"09:00", "10:00", "14:00"},
	},
	{
		name:           "Dr. Sarah Johnson",
		specialization: "Weight Management & Nutrition",
		experience:     8,
		rating:         4.8,
		bio:            "Specialized in sustainable weight loss and metabolic health.",
		image:          "https://images.unsplash.com/photo-1559839734-2b71ea197ec2?w=400",
		hours:          []string{"09:00", "10:00", "14:00"},
	},
	{
		name:           "Dr. Michael Chen",
		specialization: "Sports Nutrition & Performance",
		experience:     12,
		rating:         4.9,
		bio:            "Expert in athletic performance optimization and sports nutrition.",
		image:          "https://images.unsplash.com/photo-1612349317150-e413f6a5b16d?w=400",
		hours:          []string{"11:00", "09:00", "15:00"},
	},
	{
		name:           "Dr. Emily Rodriguez",
		specialization: "Clinical Nutrition & Diabetes",
		experience:     10,
		rating:         4.7,
		bio:            "Specializes in diabetes management and clinical nutrition therapy.",
		image:          "https://images.unsplash.com/photo-1594824980330-4e35b2c3b5e4?w=400",
		hours:          []string{"13:00", "10:00", "11:00"},
	},
}

// slots offers one slot per hour on consecutive days starting tomorrow.
func slots(now time.Time, hours []string) []models.TimeSlot {
	out := make([]models.TimeSlot, 0, len(hours))
	for i, h := range hours {
		out = append(out, models.TimeSlot{
			Date:        now.AddDate(0, 0, i+1).Format(models.DateLayout),
			Time:        h,
			IsAvailable: true,
		})
	}
	return out
}

func main() {
	config.LoadConfig()
	utils.InitLogger(config.LogLevel, "console")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := store.Connect(ctx, config.MongoURI, config.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer db.Close(context.Background())

	var images *utils.ObjectStore
	if config.AWSBucketName != "" {
		images, err = utils.NewObjectStore(ctx, config.AWSRegion, config.AWSBucketName)
		if err != nil {
			log.Warn().Err(err).Msg("S3 unavailable, keeping external image URLs")
			images = nil
		}
	}

	urls := make([]string, 0, len(dietitians))
	for _, d := range dietitians {
		urls = append(urls, d.image)
	}
	keys := map[string]string{}
	if images != nil {
		keys = utils.MirrorImages(ctx, images, urls, "dietitians")
	}

	repo := store.NewDietitianStore(db)
	now := time.Now().UTC()
	for _, d := range dietitians {
		image := d.image
		if key := keys[d.image]; key != "" {
			image = key
		}
		err := repo.UpsertByName(ctx, &models.Dietitian{
			Name:           d.name,
			Specialization: d.specialization,
			Experience:     d.experience,
			Rating:         d.rating,
			Bio:            d.bio,
			ProfileImage:   image,
			AvailableSlots: slots(now, d.hours),
			CreatedAt:      now,
		})
		if err != nil {
			log.Error().Err(err).Str("name", d.name).Msg("Failed to seed dietitian")
			continue
		}
		fmt.Printf("Seeded %s (image: %s)\n", d.name, image)
	}
}
