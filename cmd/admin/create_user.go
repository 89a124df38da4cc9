package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Asistencia-api/internal/application/auth"
	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/postgres"
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Crea una cuenta de operador (admin, supervisor o station)",
	Long: `Crea una cuenta de operador. La contraseña se toma de --password o, si se omite,
de la variable ASISTENCIA_PASSWORD.`,
	Args: cobra.NoArgs,
	RunE: runCreateUser,
}

func init() {
	createUserCmd.Flags().String("email", "", "Email de la cuenta (obligatorio)")
	createUserCmd.Flags().String("name", "", "Nombre visible")
	createUserCmd.Flags().String("role", entity.RoleAdmin, "Rol: admin, supervisor o station")
	createUserCmd.Flags().String("password", "", "Contraseña (mínimo 8 caracteres)")
	_ = createUserCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(createUserCmd)
}

func runCreateUser(cmd *cobra.Command, _ []string) error {
	password := mustGetString(cmd, "password")
	if password == "" {
		password = os.Getenv("ASISTENCIA_PASSWORD")
	}
	role := mustGetString(cmd, "role")
	if !entity.ValidRole(role) {
		return fmt.Errorf("rol inválido: %q", role)
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(e.pool), auth.JWTConfig{
		Secret:     e.cfg.JWT.Secret,
		ExpMinutes: e.cfg.JWT.Expiration,
		Issuer:     e.cfg.JWT.Issuer,
	})
	user, err := uc.CreateUser(ctx, dto.CreateUserRequest{
		Email:    mustGetString(cmd, "email"),
		Password: password,
		Name:     mustGetString(cmd, "name"),
		Role:     role,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fmt.Errorf("ya existe una cuenta con ese email")
	case errors.Is(err, domain.ErrInvalidInput):
		return fmt.Errorf("datos inválidos: email obligatorio y contraseña de al menos 8 caracteres")
	case err != nil:
		return err
	}
	e.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("cuenta creada")
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", user.ID, user.Email, user.Role)
	return nil
}
