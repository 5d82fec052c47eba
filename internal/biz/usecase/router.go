package usecase

import (
	"github.com/kudobolivia/frontdesk/internal/biz/domain"
)

// RouterUsecase classifies inbound messages against the catalog
type RouterUsecase struct {
	catalog     *domain.Catalog
	groupMarker string
}

// NewRouterUsecase creates a new router usecase
func NewRouterUsecase(catalog *domain.Catalog, groupMarker string) *RouterUsecase {
	return &RouterUsecase{
		catalog:     catalog,
		groupMarker: groupMarker,
	}
}

// IsIgnored reports whether the message comes from a group chat
func (uc *RouterUsecase) IsIgnored(msg *domain.InboundMessage) bool {
	return msg.IsFromGroup(uc.groupMarker)
}

// Route decides the disposition of one message.
// Order: group filter, human handoff, exact menu id, keyword, generative.
func (uc *RouterUsecase) Route(msg *domain.InboundMessage) domain.Disposition {
	if uc.IsIgnored(msg) {
		return domain.Disposition{Kind: domain.DispositionIgnored}
	}

	normalized := msg.Normalized()

	if uc.catalog.RequestsHuman(normalized) {
		return domain.Disposition{Kind: domain.DispositionEscalate}
	}

	if opt, ok := uc.catalog.Lookup(msg.Selection()); ok {
		return uc.canned(opt)
	}

	if opt, ok := uc.catalog.MatchKeyword(normalized); ok {
		return uc.canned(opt)
	}

	return domain.Disposition{Kind: domain.DispositionGenerated}
}

func (uc *RouterUsecase) canned(opt *domain.Option) domain.Disposition {
	return domain.Disposition{
		Kind:     domain.DispositionCanned,
		OptionID: opt.ID,
		Reply:    uc.catalog.CannedReply(opt),
	}
}

// Catalog returns the catalog the router matches against
func (uc *RouterUsecase) Catalog() *domain.Catalog {
	return uc.catalog
}
