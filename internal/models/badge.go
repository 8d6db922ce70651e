// server/internal/models/badge.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Badge is an achievement earned by a user. A (userId, badgeType) pair is
// unique and immutable once created.
type Badge struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	BadgeType string             `bson:"badgeType" json:"badgeType"`
	EarnedAt  time.Time          `bson:"earnedAt" json:"earnedAt"`
	Metadata  map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// BadgeMeta describes a badge type for display.
type BadgeMeta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Points      int    `json:"points"`
}

// BadgeInfo is the static badge catalogue.
var BadgeInfo = map[string]BadgeMeta{
	"first_donation": {
		Name:        "First Drop",
		Description: "Completed your first blood donation",
		Icon:        "🩸",
		Color:       "bg-red-500",
		Points:      100,
	},
	"five_donations": {
		Name:        "Regular Donor",
		Description: "Donated blood 5 times",
		Icon:        "⭐",
		Color:       "bg-yellow-500",
		Points:      250,
	},
	"ten_donations": {
		Name:        "Dedicated Donor",
		Description: "Donated blood 10 times",
		Icon:        "🌟",
		Color:       "bg-orange-500",
		Points:      500,
	},
	"twenty_five_donations": {
		Name:        "Silver Heart",
		Description: "Donated blood 25 times",
		Icon:        "🥈",
		Color:       "bg-gray-400",
		Points:      1000,
	},
	"fifty_donations": {
		Name:        "Golden Heart",
		Description: "Donated blood 50 times",
		Icon:        "🥇",
		Color:       "bg-yellow-400",
		Points:      2500,
	},
	"hundred_donations": {
		Name:        "Platinum Legend",
		Description: "Donated blood 100 times",
		Icon:        "💎",
		Color:       "bg-purple-500",
		Points:      5000,
	},
	"rare_blood_hero": {
		Name:        "Rare Blood Hero",
		Description: "Donated rare blood type (AB-, B-, O-)",
		Icon:        "🦸",
		Color:       "bg-indigo-500",
		Points:      300,
	},
	"emergency_responder": {
		Name:        "Emergency Responder",
		Description: "Responded to an emergency blood request",
		Icon:        "🚨",
		Color:       "bg-red-600",
		Points:      400,
	},
	"streak_3_months": {
		Name:        "3 Month Streak",
		Description: "Donated every 3 months for a year",
		Icon:        "🔥",
		Color:       "bg-orange-600",
		Points:      600,
	},
	"streak_6_months": {
		Name:        "6 Month Streak",
		Description: "Maintained regular donations for 6 months",
		Icon:        "💪",
		Color:       "bg-green-500",
		Points:      400,
	},
	"streak_1_year": {
		Name:        "Year of Giving",
		Description: "Active donor for 1 full year",
		Icon:        "🏆",
		Color:       "bg-amber-500",
		Points:      1000,
	},
	"camp_organizer": {
		Name:        "Camp Organizer",
		Description: "Organized a blood donation camp",
		Icon:        "🎪",
		Color:       "bg-blue-500",
		Points:      500,
	},
	"referral_champion": {
		Name:        "Referral Champion",
		Description: "Referred 5 new donors",
		Icon:        "👥",
		Color:       "bg-teal-500",
		Points:      350,
	},
	"life_saver": {
		Name:        "Life Saver",
		Description: "Your blood directly saved a life",
		Icon:        "❤️‍🩹",
		Color:       "bg-pink-500",
		Points:      500,
	},
	"plasma_donor": {
		Name:        "Plasma Pioneer",
		Description: "Donated plasma",
		Icon:        "💛",
		Color:       "bg-yellow-300",
		Points:      300,
	},
	"platelet_donor": {
		Name:        "Platelet Pro",
		Description: "Donated platelets",
		Icon:        "🧬",
		Color:       "bg-cyan-500",
		Points:      300,
	},
	"weekend_warrior": {
		Name:        "Weekend Warrior",
		Description: "Donated on weekends 5 times",
		Icon:        "🌅",
		Color:       "bg-rose-500",
		Points:      200,
	},
	"early_bird": {
		Name:        "Early Bird",
		Description: "Donated before 9 AM 3 times",
		Icon:        "🌅",
		Color:       "bg-sky-500",
		Points:      150,
	},
	"community_leader": {
		Name:        "Community Leader",
		Description: "Top donor in your city",
		Icon:        "👑",
		Color:       "bg-violet-500",
		Points:      1000,
	},
}
