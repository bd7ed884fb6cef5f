package models

import "gorm.io/gorm"

type CoachProfile struct {
	gorm.Model
	PersonID               uint        `json:"personId" gorm:"uniqueIndex;not null"`
	Person                 *Person     `json:"person,omitempty" gorm:"foreignKey:PersonID"`
	ExperienceYears        int         `json:"experienceYears"`
	Certifications         []string    `json:"certifications" gorm:"serializer:json;type:text"`
	TotalSessionsConducted int         `json:"totalSessionsConducted"`
	AverageFeedbackScore   float64     `json:"averageFeedbackScore"`
	Affiliation            Affiliation `json:"affiliation" gorm:"embedded;embeddedPrefix:affiliation_"`
}

type VolunteerProfile struct {
	gorm.Model
	PersonID     uint     `json:"personId" gorm:"uniqueIndex;not null"`
	Skills       []string `json:"skills" gorm:"serializer:json;type:text"`
	Availability string   `json:"availability"`
}
