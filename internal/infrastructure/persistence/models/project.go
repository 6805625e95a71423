package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/construction"
)

// ProjectModel is the persistence model for construction projects
type ProjectModel struct {
	BaseModel
	ContractorName  string                     `gorm:"type:varchar(200);not null"`
	ProjectName     string                     `gorm:"type:varchar(200);not null"`
	ProjectSite     string                     `gorm:"type:varchar(500)"`
	NoticeToProceed *time.Time                 `gorm:"type:date"`
	CompletionDate  *time.Time                 `gorm:"type:date"`
	DurationDays    int                        `gorm:"not null"`
	ContractPrice   decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Status          construction.ProjectStatus `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project
func (m *ProjectModel) ToDomain() *construction.Project {
	return &construction.Project{
		BaseEntity:      m.BaseModel.ToDomain(),
		ContractorName:  m.ContractorName,
		ProjectName:     m.ProjectName,
		ProjectSite:     m.ProjectSite,
		NoticeToProceed: m.NoticeToProceed,
		CompletionDate:  m.CompletionDate,
		DurationDays:    m.DurationDays,
		ContractPrice:   m.ContractPrice,
		Status:          m.Status,
	}
}

// ProjectModelFromDomain creates a new persistence model from a domain Project
func ProjectModelFromDomain(p *construction.Project) *ProjectModel {
	m := &ProjectModel{
		ContractorName:  p.ContractorName,
		ProjectName:     p.ProjectName,
		ProjectSite:     p.ProjectSite,
		NoticeToProceed: p.NoticeToProceed,
		CompletionDate:  p.CompletionDate,
		DurationDays:    p.DurationDays,
		ContractPrice:   p.ContractPrice,
		Status:          p.Status,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ActivityModel is the persistence model for project site activities
type ActivityModel struct {
	BaseModel
	ProjectID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_project_activities_project_at,priority:1"`
	Activity   string     `gorm:"type:varchar(255);not null"`
	ActivityAt time.Time  `gorm:"not null;index:idx_project_activities_project_at,priority:2"`
	Status     string     `gorm:"type:varchar(30);not null;default:Pending"`
	CreatedBy  *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ActivityModel) TableName() string {
	return "project_activities"
}

// ToDomain converts the persistence model to a domain Activity
func (m *ActivityModel) ToDomain() *construction.Activity {
	return &construction.Activity{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProjectID:   m.ProjectID,
		Description: m.Activity,
		At:          m.ActivityAt.UTC(),
		Status:      m.Status,
		CreatedBy:   m.CreatedBy,
	}
}

// ActivityModelFromDomain creates a new persistence model from a domain Activity
func ActivityModelFromDomain(a *construction.Activity) *ActivityModel {
	m := &ActivityModel{
		ProjectID:  a.ProjectID,
		Activity:   a.Description,
		ActivityAt: a.At,
		Status:     a.Status,
		CreatedBy:  a.CreatedBy,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
