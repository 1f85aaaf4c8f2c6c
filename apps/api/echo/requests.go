package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/iwneis/neishelper/core/catalog"
)

type (
	// SaveChecklistRequest is the body of POST /checklist. Data is the opaque serialized state.
	SaveChecklistRequest struct {
		UserID string `json:"userId" validate:"max=128"`
		Data   string `json:"data" validate:"required,notblank"`
	}

	GetChecklistResponse struct {
		Data *string `json:"data"`
	}

	SaveChecklistResponse struct {
		Success bool `json:"success"`
	}

	PeriodResponse struct {
		Period     catalog.Period `json:"period"`
		Label      string         `json:"label"`
		ShortLabel string         `json:"shortLabel"`
	}

	PeriodsResponse struct {
		Current catalog.Period   `json:"current"`
		Periods []PeriodResponse `json:"periods"`
	}

	CategoryResponse struct {
		Category catalog.Category `json:"category"`
		Label    string           `json:"label"`
	}

	ItemsResponse struct {
		Period catalog.Period          `json:"period"`
		Label  string                  `json:"label"`
		Groups []catalog.CategoryGroup `json:"groups"`
	}

	ScheduleResponse struct {
		catalog.MonthlySchedule
		Summary catalog.ScheduleSummary `json:"summary"`
	}

	GuideLink struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Icon  string `json:"icon"`
	}

	// OverviewResponse is the dashboard of the current month: its period briefing and task stats.
	OverviewResponse struct {
		Year        int                     `json:"year"`
		Month       int                     `json:"month"`
		Period      catalog.Period          `json:"period"`
		Label       string                  `json:"label"`
		Description string                  `json:"description"`
		Notices     []string                `json:"notices"`
		Guides      []GuideLink             `json:"guides"`
		Tasks       int                     `json:"tasks"`
		Summary     catalog.ScheduleSummary `json:"summary"`
	}

	FAQsResponse struct {
		Results     []catalog.FAQ `json:"results"`
		Suggestions []catalog.FAQ `json:"suggestions"`
		Popular     []catalog.FAQ `json:"popular"`
	}
)

func (r SaveChecklistRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}
