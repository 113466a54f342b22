package ordering

import (
	"github.com/jhoicas/buen-sabor-api/internal/application/dto"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
)

// ToOrderResponse convierte la entidad en el DTO de salida.
func ToOrderResponse(o *entity.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:               o.ID,
		UserID:           o.UserID,
		AddressID:        o.AddressID,
		Status:           string(o.Status),
		DeliveryMethod:   string(o.DeliveryMethod),
		PaymentMethod:    string(o.PaymentMethod),
		Total:            o.Total,
		Discount:         o.Discount,
		FinalTotal:       o.FinalTotal,
		EstimatedTime:    o.EstimatedTime,
		IsPaid:           o.IsPaid,
		PaymentID:        o.PaymentID,
		Notes:            o.Notes,
		RestoredAt:       o.RestoredAt,
		Details:          make([]dto.OrderDetailResponse, 0, len(o.Details)),
		InventoryDetails: make([]dto.OrderInventoryDetailResponse, 0, len(o.InventoryDetails)),
		CreatedAt:        o.CreatedAt,
	}
	for _, d := range o.Details {
		resp.Details = append(resp.Details, dto.OrderDetailResponse{
			ID:                 d.ID,
			ManufacturedItemID: d.ManufacturedItemID,
			Quantity:           d.Quantity,
			UnitPrice:          d.UnitPrice,
			Subtotal:           d.Subtotal,
		})
	}
	for _, d := range o.InventoryDetails {
		resp.InventoryDetails = append(resp.InventoryDetails, dto.OrderInventoryDetailResponse{
			ID:              d.ID,
			InventoryItemID: d.InventoryItemID,
			Quantity:        d.Quantity,
			UnitPrice:       d.UnitPrice,
			Subtotal:        d.Subtotal,
		})
	}
	return resp
}
