package http

import (
	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
)

func toCampaignResponse(c entity.Campaign) dto.CampaignResponse {
	return dto.CampaignResponse{
		ID:            c.ID,
		Type:          string(c.Type),
		Status:        string(c.Status),
		ScheduledDate: c.ScheduledDate,
	}
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	campaigns := make([]dto.CampaignResponse, 0, len(c.Campaigns))
	for _, camp := range c.Campaigns {
		campaigns = append(campaigns, toCampaignResponse(camp))
	}
	return dto.CustomerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		Email:           c.Email,
		Address:         c.Address,
		City:            c.City,
		Zip:             c.Zip,
		Segment:         string(c.Segment),
		LifetimeValue:   c.LifetimeValue,
		LastServiceDate: c.LastServiceDate,
		LastContactDate: c.LastContactDate,
		Campaigns:       campaigns,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toCustomerResponses(customers []*entity.Customer) []dto.CustomerResponse {
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out
}

func toQuoteResponse(q *entity.Quote) dto.QuoteResponse {
	items := make([]dto.QuoteItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, dto.QuoteItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return dto.QuoteResponse{
		ID:              q.ID,
		CustomerID:      q.CustomerID,
		Title:           q.Title,
		Items:           items,
		Total:           q.Total,
		Status:          string(q.Status),
		ScheduledDate:   q.ScheduledDate,
		ScheduledTime:   q.ScheduledTime,
		Notes:           q.Notes,
		CalendarEventID: q.CalendarEventID,
		JobID:           q.JobID,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func toQuoteResponses(quotes []*entity.Quote) []dto.QuoteResponse {
	out := make([]dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, toQuoteResponse(q))
	}
	return out
}

func toJobResponse(j *entity.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:              j.ID,
		CustomerID:      j.CustomerID,
		QuoteID:         j.QuoteID,
		Title:           j.Title,
		Description:     j.Description,
		Status:          string(j.Status),
		Priority:        string(j.Priority),
		ScheduledDate:   j.ScheduledDate,
		ScheduledTime:   j.ScheduledTime,
		Notes:           j.Notes,
		CalendarEventID: j.CalendarEventID,
		CompletedAt:     j.CompletedAt,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func toJobResponses(jobs []*entity.Job) []dto.JobResponse {
	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	return out
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		EmailVerified:      u.EmailVerified,
		UserType:           u.UserType,
		SubscriptionTier:   string(u.Tier),
		SubscriptionStatus: u.SubscriptionStatus,
		SubscriptionExpiry: u.SubscriptionExpiry,
		BusinessProfile: dto.BusinessProfileResponse{
			CompanyName: u.BusinessProfile.CompanyName,
			OwnerName:   u.BusinessProfile.OwnerName,
			Address:     u.BusinessProfile.Address,
			Phone:       u.BusinessProfile.Phone,
			Email:       u.BusinessProfile.Email,
			TaxID:       u.BusinessProfile.TaxID,
			Logo:        u.BusinessProfile.Logo,
		},
		CreatedAt:           u.CreatedAt,
		LastLogin:           u.LastLogin,
		OnboardingCompleted: u.OnboardingCompleted,
	}
}
