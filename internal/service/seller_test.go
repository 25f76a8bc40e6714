package service

import (
	"context"
	"testing"

	"bookalink/internal/apperr"
	"bookalink/internal/model"
	"bookalink/internal/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() RegisterInput {
	return RegisterInput{
		FullName:        "Alice Potter",
		Username:        "Alice_P",
		Email:           "alice@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	session, seller, err := f.sellerService().Register(ctx, validRegistration())
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, session.Identity.UserID, seller.ID)
	assert.Equal(t, "alice_p", seller.Username)
	assert.Equal(t, "Alice Potter", seller.BusinessName)
	assert.Equal(t, DefaultCategory, seller.Category)

	stored, err := f.sellers.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice_p", stored.Username)
	assert.Empty(t, stored.Portfolio)

	identity, err := f.identity.Session(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice_p", identity.Metadata["username"])
}

func TestRegister_UsernameCollisionIgnoresCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seller(t, "alice_p")

	in := validRegistration()
	in.Username = "ALICE_P"
	_, _, err := f.sellerService().Register(ctx, in)

	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = f.accounts.FindByEmail(ctx, in.Email)
	assert.ErrorIs(t, err, apperr.ErrNotFound, "no account is created for a taken username")
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*RegisterInput)
		field string
	}{
		{"short username", func(in *RegisterInput) { in.Username = "al" }, "username"},
		{"username with dash", func(in *RegisterInput) { in.Username = "alice-p" }, "username"},
		{"username with space", func(in *RegisterInput) { in.Username = "alice p" }, "username"},
		{"password mismatch", func(in *RegisterInput) { in.ConfirmPassword = "secret2" }, "confirm_password"},
		{"short password", func(in *RegisterInput) { in.Password, in.ConfirmPassword = "abc", "abc" }, "password"},
		{"bad email", func(in *RegisterInput) { in.Email = "alice" }, "email"},
		{"missing name", func(in *RegisterInput) { in.FullName = " " }, "full_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := validRegistration()
			tt.edit(&in)

			_, _, err := f.sellerService().Register(context.Background(), in)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateUsername(t *testing.T) {
	for _, ok := range []string{"abc", "alice_99", "ABC", "___"} {
		assert.NoError(t, ValidateUsername(ok), ok)
	}
	for _, bad := range []string{"", "ab", "alice!", "álice", "a.b.c"} {
		assert.True(t, apperr.IsValidation(ValidateUsername(bad)), bad)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.sellerService()

	_, seller, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, seller.ID, ProfileInput{
		Name:         "Alice",
		BusinessName: "Alice Pottery",
		Bio:          "Wheel-thrown mugs",
		ProfileImage: "https://img.test/a.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Pottery", updated.DisplayName())
	assert.Equal(t, "Wheel-thrown mugs", updated.Bio)

	account, err := f.accounts.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Pottery", account.Metadata["business_name"])
}

func TestUpdateProfile_MetadataFailureOnlyLogged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seller := f.seller(t, "alice")

	// the seller exists without a backing account, so the metadata merge fails
	updated, err := f.sellerService().UpdateProfile(ctx, seller.ID, ProfileInput{Name: "Alice"})

	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	require.NotNil(t, f.hook.LastEntry())
	assert.Equal(t, "failed to update account metadata", f.hook.LastEntry().Message)
}

func TestUpdatePayments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seller := f.seller(t, "alice")
	svc := f.sellerService()

	updated, err := svc.UpdatePayments(ctx, seller.ID, model.PaymentHandles{
		VenmoUsername: " @alice ",
		PaypalEmail:   "alice@pay.me",
	})
	require.NoError(t, err)
	assert.Equal(t, "@alice", updated.VenmoUsername)
	assert.Equal(t, "alice@pay.me", updated.PaypalEmail)

	_, err = svc.UpdatePayments(ctx, seller.ID, model.PaymentHandles{ZelleEmail: "not-an-email"})
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateSocial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seller := f.seller(t, "alice")

	updated, err := f.sellerService().UpdateSocial(ctx, seller.ID, model.SocialHandles{
		InstagramHandle: "alice.pots",
		SpotifyURL:      "https://open.spotify.com/user/alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice.pots", updated.InstagramHandle)
	assert.Equal(t, "https://open.spotify.com/user/alice", updated.SpotifyURL)
}

func TestSetTheme(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seller := f.seller(t, "alice")
	prefs := &theme.MemoryStore{}

	applied, err := f.sellerService().SetTheme(ctx, seller.ID, "forest", prefs)
	require.NoError(t, err)
	assert.Equal(t, "forest", applied.Key)
	assert.Equal(t, "forest", f.themes.Stored(prefs))

	stored, err := f.sellers.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	color, _ := f.themes.PrimaryColor("forest")
	assert.Equal(t, color, stored.ThemeColor)
	assert.Equal(t, "forest", f.themes.KeyFromColor(stored.ThemeColor))

	_, err = f.sellerService().SetTheme(ctx, seller.ID, "plaid", prefs)
	assert.True(t, apperr.IsValidation(err))
}

func TestPortfolio(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seller := f.seller(t, "alice")
	svc := f.sellerService()

	_, err := svc.AddPortfolioImage(ctx, seller.ID, "https://img.test/1.png")
	require.NoError(t, err)
	_, err = svc.AddPortfolioImage(ctx, seller.ID, "https://img.test/2.png")
	require.NoError(t, err)
	portfolio, err := svc.AddPortfolioImage(ctx, seller.ID, "https://img.test/3.png")
	require.NoError(t, err)
	assert.Len(t, portfolio, 3)

	portfolio, err = svc.RemovePortfolioImage(ctx, seller.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.test/1.png", "https://img.test/3.png"}, []string(portfolio))

	stored, err := f.sellers.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.test/1.png", "https://img.test/3.png"}, []string(stored.Portfolio))

	_, err = svc.RemovePortfolioImage(ctx, seller.ID, 5)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestShareURL(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "https://bookalink.test/alice", f.sellerService().ShareURL("alice"))
}
