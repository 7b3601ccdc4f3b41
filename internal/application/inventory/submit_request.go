package inventory

import (
	"context"

	"github.com/jhoicas/Distribucion-api/internal/application/dto"
	"github.com/jhoicas/Distribucion-api/internal/domain/entity"
)

// SubmitFromRequest adapta el body HTTP al caso de uso Submit(ctx, SubmitInput).
// Usar desde handlers HTTP o desde otros casos de uso que ya tengan companyID y userID.
func (uc *DistributionUseCase) SubmitFromRequest(
	ctx context.Context,
	companyID, userID, idempotencyKey string,
	in dto.CreateDistributionRequest,
) (*SubmitResult, error) {
	allocations := make([]Allocation, 0, len(in.Products))
	for _, p := range in.Products {
		allocations = append(allocations, Allocation{ProductID: p.ProductID, Quantity: p.Quantity})
	}
	return uc.Submit(ctx, SubmitInput{
		CompanyID: companyID,
		UserID:    userID,
		Worker: entity.WorkerIdentity{
			Name:   in.WorkerName,
			Gender: in.WorkerGender,
			Mobile: in.WorkerMobile,
		},
		Allocations:    allocations,
		IdempotencyKey: idempotencyKey,
	})
}

// ToWorkerResponses convierte identidades a DTO; gender y mobile vacíos salen como null.
func ToWorkerResponses(workers []entity.WorkerIdentity) []dto.WorkerResponse {
	out := make([]dto.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		out = append(out, dto.WorkerResponse{
			WorkerName:   w.Name,
			WorkerGender: entity.NullableString(w.Gender),
			WorkerMobile: entity.NullableString(w.Mobile),
		})
	}
	return out
}
