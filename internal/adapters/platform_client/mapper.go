package platform_client

import (
	"strings"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/pagination"
)

func toImage(m *MediaDTO) *domain.Image {
	if m == nil || m.MainMedia == nil || m.MainMedia.Image == nil {
		return nil
	}
	return imageFromDTO(m.MainMedia.Image)
}

func imageFromDTO(img *ImageDTO) *domain.Image {
	if img == nil || img.URL == "" {
		return nil
	}
	return &domain.Image{URL: img.URL, AltText: img.AltText, Width: img.Width, Height: img.Height}
}

func toProduct(dto ProductDTO) domain.Product {
	p := domain.Product{
		ID:            dto.ID,
		Slug:          dto.Slug,
		Name:          dto.Name,
		Description:   dto.Description,
		Ribbon:        dto.Ribbon,
		MainImage:     toImage(dto.Media),
		CollectionIDs: dto.CollectionIDs,
		InStock:       true,
	}
	if dto.PriceData != nil {
		p.Price = dto.PriceData.Price
		p.Currency = dto.PriceData.Currency
		p.FormattedPrice = dto.PriceData.Formatted.Price
	}
	if dto.Stock != nil {
		p.InStock = dto.Stock.InStock
	}
	return p
}

func toProducts(dtos []ProductDTO) []domain.Product {
	products := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, toProduct(dto))
	}
	return products
}

func toCollection(dto CollectionDTO) domain.Collection {
	return domain.Collection{
		ID:          dto.ID,
		Slug:        dto.Slug,
		Name:        dto.Name,
		Description: dto.Description,
		Banner:      toImage(dto.Media),
	}
}

func toOrder(dto OrderDTO) domain.Order {
	o := domain.Order{
		ID:             dto.ID,
		Number:         dto.Number,
		Status:         dto.Status,
		FormattedTotal: dto.PriceSummary.Total.FormattedAmount,
		CreatedAt:      dto.CreatedDate,
		BuyerEmail:     dto.BuyerInfo.Email,
	}
	for _, li := range dto.LineItems {
		o.LineItems = append(o.LineItems, domain.LineItem{
			ProductID:      li.CatalogItemID,
			Name:           li.ProductName,
			Quantity:       li.Quantity,
			FormattedPrice: li.Price.FormattedAmount,
			Image:          imageFromDTO(li.Image),
		})
	}
	return o
}

func toMember(dto MemberDTO) domain.Member {
	return domain.Member{
		ID:         dto.ID,
		ContactID:  dto.ContactID,
		LoginEmail: dto.LoginEmail,
		FirstName:  dto.Contact.FirstName,
		LastName:   dto.Contact.LastName,
		Nickname:   dto.Profile.Nickname,
	}
}

func toReview(dto ReviewDTO) domain.Review {
	return domain.Review{
		ID:         dto.ID,
		ProductID:  dto.EntityID,
		ContactID:  dto.Author.ContactID,
		AuthorName: dto.Author.AuthorName,
		Title:      dto.Content.Title,
		Body:       dto.Content.Body,
		Rating:     dto.Content.Rating,
		CreatedAt:  dto.CreatedDate,
	}
}

// nextCursor: пустой курсор от платформы означает конец ленты.
func nextCursor(meta PagingMetadata) *string {
	if meta.Cursors.Next == nil || strings.TrimSpace(*meta.Cursors.Next) == "" {
		return nil
	}
	next := *meta.Cursors.Next
	return &next
}

func toReviewPage(resp ReviewQueryResponse) *pagination.CursorPage[domain.Review] {
	page := &pagination.CursorPage[domain.Review]{
		Items: make([]domain.Review, 0, len(resp.Items)),
		Next:  nextCursor(resp.PagingMetadata),
	}
	for _, dto := range resp.Items {
		page.Items = append(page.Items, toReview(dto))
	}
	return page
}
