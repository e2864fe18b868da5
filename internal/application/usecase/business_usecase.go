// Package usecase agrupa casos de uso transversales de la cuenta.
package usecase

import (
	"context"

	"github.com/simplepro/simplepro-api/internal/application/auth"
	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
	"github.com/simplepro/simplepro-api/internal/domain/repository"
	"github.com/simplepro/simplepro-api/pkg/logger"
)

const profileSnapshotNamespace = "business-profile-storage"

// BusinessUseCase perfil de negocio del usuario en sesión, con snapshot
// persistido por usuario.
type BusinessUseCase struct {
	session   *auth.SessionUseCase
	snapshots repository.SnapshotStore
	log       *logger.Logger
}

// NewBusinessUseCase construye el caso de uso.
func NewBusinessUseCase(session *auth.SessionUseCase, snapshots repository.SnapshotStore, log *logger.Logger) *BusinessUseCase {
	return &BusinessUseCase{session: session, snapshots: snapshots, log: log}
}

// InitializeForUser carga el perfil persistido del usuario, si existe, sobre
// la sesión recién abierta.
func (uc *BusinessUseCase) InitializeForUser(ctx context.Context, userID string) error {
	if userID == entity.TestUserID {
		return nil
	}
	var profile entity.BusinessProfile
	found, err := uc.snapshots.Load(ctx, profileSnapshotNamespace+":"+userID, &profile)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	uc.session.SetBusinessProfile(profile)
	return nil
}

// Reset no vacía nada: el perfil vive en el usuario de sesión, que se limpia
// en el logout.
func (uc *BusinessUseCase) Reset(ctx context.Context) error {
	return nil
}

// Profile devuelve el perfil de negocio del usuario en sesión.
func (uc *BusinessUseCase) Profile(ctx context.Context) (*entity.BusinessProfile, error) {
	user := uc.session.CurrentUser()
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	p := user.BusinessProfile
	return &p, nil
}

// Update aplica una actualización parcial al perfil y persiste el snapshot.
func (uc *BusinessUseCase) Update(ctx context.Context, in dto.UpdateBusinessProfileRequest) (*entity.BusinessProfile, error) {
	user, err := uc.session.UpdateBusinessProfile(ctx, in)
	if err != nil {
		return nil, err
	}
	key := profileSnapshotNamespace + ":" + user.ID
	if err := uc.snapshots.Save(ctx, key, user.BusinessProfile); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("snapshot de perfil de negocio: guardar")
	}
	p := user.BusinessProfile
	return &p, nil
}
