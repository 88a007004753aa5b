package http

import (
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/internal/cnap/service"
	"github.com/aussiebroadwan/cnap/pkg/cnapsdk"
)

const dateLayout = "2006-01-02"

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func optionalStamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return stamp(*t)
}

func toOrganization(o domain.Organization) cnapsdk.Organization {
	return cnapsdk.Organization{ID: o.ID, Name: o.Name, CreatedAt: stamp(o.CreatedAt)}
}

func toResearchGroup(g domain.ResearchGroup) cnapsdk.ResearchGroup {
	return cnapsdk.ResearchGroup{
		ID:                    g.ID,
		PIName:                g.PIName,
		PIEmail:               g.PIEmail,
		OrganizationID:        g.OrganizationID,
		HasHarvardAppointment: g.HasHarvardAppointment,
		Department:            g.Department,
		AddressLines:          g.AddressLines,
		City:                  g.City,
		State:                 g.State,
		PostalCode:            g.PostalCode,
		Country:               g.Country,
		CreatedAt:             stamp(g.CreatedAt),
	}
}

func toMember(m domain.CnapUser) cnapsdk.Member {
	return cnapsdk.Member{
		ID:              m.ID,
		UserID:          m.UserID,
		ResearchGroupID: m.ResearchGroupID,
		JoinedAt:        stamp(m.JoinedAt),
	}
}

func toProduct(p domain.Product) cnapsdk.Product {
	return cnapsdk.Product{
		ID: p.ID,
		ProductInput: cnapsdk.ProductInput{
			Name:              p.Name,
			Description:       p.Description,
			Quantity:          p.Quantity,
			IsQuantityLimited: p.IsQuantityLimited,
			WorkflowPK:        p.WorkflowPK,
			UnitCostCents:     int64(p.UnitCost),
		},
		UnitCost:  p.UnitCost.String(),
		CreatedAt: stamp(p.CreatedAt),
	}
}

func fromProductInput(in cnapsdk.ProductInput) domain.Product {
	return domain.Product{
		Name:              in.Name,
		Description:       in.Description,
		Quantity:          in.Quantity,
		IsQuantityLimited: in.IsQuantityLimited,
		WorkflowPK:        in.WorkflowPK,
		UnitCost:          domain.Cents(in.UnitCostCents),
	}
}

func toPayment(v service.PaymentView) cnapsdk.Payment {
	p := v.Payment
	out := cnapsdk.Payment{
		ID: p.ID,
		PaymentInput: cnapsdk.PaymentInput{
			PaymentType:     string(p.Type),
			Number:          p.Number,
			ResearchGroupID: p.ResearchGroupID,
			Code:            p.Code,
		},
		CreatedAt: stamp(p.CreatedAt),
	}
	if p.Date != nil {
		d := p.Date.Format(dateLayout)
		out.PaymentDate = &d
	}
	if p.Amount != nil {
		amount := int64(*p.Amount)
		out.AmountCents = &amount
	}
	if b := v.Budget; b != nil {
		out.Budget = &cnapsdk.Budget{
			CurrentSumCents: int64(b.CurrentSum),
			CurrentSum:      b.CurrentSum.String(),
			UpdatedAt:       stamp(b.UpdatedAt),
		}
	}
	return out
}

// fromPaymentInput reports false when the payment date does not parse.
func fromPaymentInput(in cnapsdk.PaymentInput) (domain.Payment, bool) {
	p := domain.Payment{
		Type:            domain.PaymentType(in.PaymentType),
		Number:          in.Number,
		ResearchGroupID: in.ResearchGroupID,
		Code:            in.Code,
	}
	if in.PaymentDate != nil && *in.PaymentDate != "" {
		d, err := time.Parse(dateLayout, *in.PaymentDate)
		if err != nil {
			return domain.Payment{}, false
		}
		p.Date = &d
	}
	if in.AmountCents != nil {
		amount := domain.Cents(*in.AmountCents)
		p.Amount = &amount
	}
	return p, true
}

func toPurchase(p domain.Purchase) cnapsdk.Purchase {
	return cnapsdk.Purchase{
		ID:             p.ID,
		CnapUserID:     p.CnapUserID,
		PurchaseNumber: p.PurchaseNumber,
		IssueDate:      optionalStamp(p.IssueDate),
		CloseDate:      optionalStamp(p.CloseDate),
		CreatedAt:      stamp(p.CreatedAt),
	}
}

func toOrder(o domain.Order) cnapsdk.Order {
	return cnapsdk.Order{
		ID:          o.ID,
		ProductID:   o.ProductID,
		PurchaseID:  o.PurchaseID,
		Quantity:    o.Quantity,
		OrderFilled: o.OrderFilled,
		CreatedAt:   stamp(o.CreatedAt),
	}
}

func toPendingRequest(p domain.PendingUser) cnapsdk.PendingRequest {
	r := p.Request
	return cnapsdk.PendingRequest{
		ID:             p.ID,
		Status:         string(p.Status),
		IsPI:           p.IsPI,
		RequesterName:  r.RequesterName(),
		RequesterEmail: r.Email,
		PIName:         r.PIName(),
		PIEmail:        r.PIEmail,
		Organization:   r.Organization,
		RequestedAt:    stamp(p.RequestedAt),
		ProcessedAt:    optionalStamp(p.ProcessedAt),
	}
}
