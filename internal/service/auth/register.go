package auth

import (
	"context"
	"errors"
	"slot_engine/internal/model"
	"slot_engine/internal/repository"
	"slot_engine/pkg/pass"
)

// Register создает пользователя со стартовым балансом и сразу открывает сессию
func (s *serv) Register(ctx context.Context, user *model.User) (*model.AuthData, error) {
	if user.Login == "" || user.Password == "" {
		return nil, ErrInvalidUser
	}

	passwordHash, err := pass.Hash(user.Password)
	if err != nil {
		return nil, err
	}

	newUser := *user
	newUser.Password = passwordHash
	newUser.Balance = startBalance

	var data *model.AuthData
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		id, err := s.userRepo.CreateUser(txCtx, &newUser)
		if err != nil {
			if errors.Is(err, repository.ErrAlreadyExists) {
				return ErrLoginTaken
			}
			return err
		}

		data, err = s.openSession(txCtx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}
