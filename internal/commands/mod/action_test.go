package mod

import (
	"context"
	"testing"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

func setupTestService(t *testing.T) {
	t.Helper()
	Setup(moderation.NewService(
		moderation.NewMemoryLedger(),
		moderation.NewMemorySettings(),
		nil,
		nil,
	))
	t.Cleanup(func() { Setup(nil) })
}

func TestModeratorActor(t *testing.T) {
	member := &discordgo.Member{
		User:        &discordgo.User{ID: "mod1"},
		Roles:       []string{"r1", "r2"},
		Permissions: discordgo.PermissionAdministrator,
	}

	actor := moderatorActor(member)
	if actor.ID != "mod1" || !actor.IsAdmin || len(actor.RoleIDs) != 2 {
		t.Errorf("actor inesperado: %+v", actor)
	}

	plain := moderatorActor(&discordgo.Member{
		User:        &discordgo.User{ID: "u1"},
		Permissions: discordgo.PermissionManageMessages,
	})
	if plain.IsAdmin {
		t.Error("ManageMessages no debe contar como administrador")
	}

	if empty := moderatorActor(nil); empty.ID != "" || empty.IsAdmin {
		t.Errorf("member nil debe dar un actor vacío: %+v", empty)
	}
}

// El panel de acciones y el de configuración se rechazan antes de
// renderizarse cuando el invocante no pasa la política de whitelist.
func TestCanModerate(t *testing.T) {
	setupTestService(t)
	ctx := context.Background()

	roles := []string{"staff"}
	users := []string{"trusted"}
	err := service.Settings.Update(ctx, "g1", models.SettingsPatch{
		WhitelistRoles: &roles,
		WhitelistUsers: &users,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	cases := []struct {
		name  string
		actor models.Actor
		want  bool
	}{
		{"administrador", models.Actor{ID: "a1", IsAdmin: true}, true},
		{"rol en whitelist", models.Actor{ID: "u1", RoleIDs: []string{"other", "staff"}}, true},
		{"usuario en whitelist", models.Actor{ID: "trusted"}, true},
		{"sin privilegios", models.Actor{ID: "u2", RoleIDs: []string{"other"}}, false},
	}

	for _, tc := range cases {
		got, err := canModerate(ctx, "g1", tc.actor)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: esperado %v, hay %v", tc.name, tc.want, got)
		}
	}
}

// En un guild recién configurado (whitelists vacías) solo pasan los
// administradores.
func TestCanModerateDefaults(t *testing.T) {
	setupTestService(t)
	ctx := context.Background()

	if ok, _ := canModerate(ctx, "g2", models.Actor{ID: "a1", IsAdmin: true}); !ok {
		t.Error("un administrador debe pasar con la configuración por defecto")
	}
	if ok, _ := canModerate(ctx, "g2", models.Actor{ID: "u1"}); ok {
		t.Error("un usuario sin whitelist no debe pasar")
	}
}
