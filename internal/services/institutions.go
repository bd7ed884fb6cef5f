package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/geo"
	"yultimate_hub/internal/models"
)

type InstitutionInput struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Location string          `json:"location"`
	Geometry json.RawMessage `json:"geometry"`
}

// InstitutionView carries the stored point back out as GeoJSON.
type InstitutionView struct {
	models.Institution
	Geometry json.RawMessage `json:"geometry,omitempty"`
}

type InstitutionService struct {
	db *gorm.DB
}

func NewInstitutionService(db *gorm.DB) *InstitutionService {
	return &InstitutionService{db: db}
}

// List returns institutions by name, optionally only one type.
func (s *InstitutionService) List(ctx context.Context, typ string) ([]InstitutionView, error) {
	q := s.db.WithContext(ctx).Order("name").Order("id")
	if typ != "" {
		if !validInstitutionType(typ) {
			return nil, apperr.Validation("Type must be school or community")
		}
		q = q.Where("type = ?", typ)
	}
	var rows []models.Institution
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list institutions: %w", err)
	}
	out := make([]InstitutionView, 0, len(rows))
	for _, r := range rows {
		out = append(out, toInstitutionView(r))
	}
	return out, nil
}

func (s *InstitutionService) Create(ctx context.Context, in InstitutionInput) (*InstitutionView, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperr.Validation("Institution name is required")
	}
	if !validInstitutionType(in.Type) {
		return nil, apperr.Validation("Type must be school or community")
	}
	point, err := geo.PointToWKB(in.Geometry)
	if err != nil {
		return nil, apperr.Validation("Invalid geometry: %v", err)
	}

	inst := models.Institution{Name: in.Name, Type: in.Type, Location: in.Location, Geometry: point}
	if err := s.db.WithContext(ctx).Create(&inst).Error; err != nil {
		return nil, fmt.Errorf("create institution: %w", err)
	}
	logrus.WithFields(logrus.Fields{"institution_id": inst.ID, "type": inst.Type}).Info("Institution created.")
	view := toInstitutionView(inst)
	return &view, nil
}

func toInstitutionView(inst models.Institution) InstitutionView {
	view := InstitutionView{Institution: inst}
	if len(inst.Geometry) > 0 {
		g, err := geo.WKBToGeoJSON(inst.Geometry)
		if err != nil {
			logrus.WithError(err).WithField("institution_id", inst.ID).Warn("Stored geometry is unreadable.")
		} else {
			view.Geometry = g
		}
	}
	return view
}

func validInstitutionType(t string) bool {
	return t == models.AffiliationSchool || t == models.AffiliationCommunity
}
