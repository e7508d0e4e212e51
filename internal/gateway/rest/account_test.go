package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func TestSignin(t *testing.T) {
	client := newFakeGateway(t, func(r chi.Router) {
		r.Post("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
			body := readBody(t, r)
			assert.Equal(t, "ahmed@example.com", body["email"])
			assert.Equal(t, "secret1", body["password"])
			writeBody(w, http.StatusOK, `{"message":"success","user":{"name":"Ahmed","email":"ahmed@example.com","role":"user"},"token":"jwt"}`)
		})
	})

	res, err := client.Signin(context.Background(), domain.SigninInput{Email: "ahmed@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", res.Token)
	assert.Equal(t, "Ahmed", res.User.Name)
	assert.Equal(t, "user", res.User.Role)
}

func TestSignup_FieldError(t *testing.T) {
	client := newFakeGateway(t, func(r chi.Router) {
		r.Post("/auth/signup", func(w http.ResponseWriter, r *http.Request) {
			body := readBody(t, r)
			assert.Equal(t, "secret1", body["rePassword"])
			writeBody(w, http.StatusBadRequest, `{"message":"fail","errors":{"value":"ahmed@example.com","msg":"E-mail already in use","param":"email","location":"body"}}`)
		})
	})

	_, err := client.Signup(context.Background(), domain.SignupInput{
		Name: "Ahmed", Email: "ahmed@example.com", Password: "secret1", RePassword: "secret1", Phone: "01012345678",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
	assert.Equal(t, "E-mail already in use", apperrors.Message(err))
}

func TestPasswordRecovery(t *testing.T) {
	client := newFakeGateway(t, func(r chi.Router) {
		r.Post("/auth/forgotPasswords", func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusOK, `{"statusMsg":"success","message":"Reset code sent to your email"}`)
		})
		r.Post("/auth/verifyResetCode", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "123456", readBody(t, r)["resetCode"])
			writeBody(w, http.StatusOK, `{"status":"Success"}`)
		})
		r.Put("/auth/resetPassword", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "newsecret", readBody(t, r)["newPassword"])
			writeBody(w, http.StatusOK, `{"token":"fresh"}`)
		})
	})
	ctx := context.Background()

	msg, err := client.ForgotPassword(ctx, domain.ForgotPasswordInput{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "Reset code sent to your email", msg)

	status, err := client.VerifyResetCode(ctx, domain.VerifyResetCodeInput{ResetCode: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "Success", status)

	tok, err := client.ResetPassword(ctx, domain.ResetPasswordInput{Email: "a@b.co", NewPassword: "newsecret"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
}

func TestUserProfile(t *testing.T) {
	client := newFakeGateway(t, func(r chi.Router) {
		r.Get("/users/getMe", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, testToken, r.Header.Get("token"))
			writeBody(w, http.StatusOK, `{"data":{"_id":"u1","name":"Ahmed","email":"a@b.co","phone":"01012345678","role":"user"}}`)
		})
		r.Put("/users/updateMe", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Mona", readBody(t, r)["name"])
			writeBody(w, http.StatusOK, `{"message":"success","user":{"name":"Mona","email":"a@b.co","role":"user"}}`)
		})
		r.Put("/users/changeMyPassword", func(w http.ResponseWriter, r *http.Request) {
			body := readBody(t, r)
			assert.Equal(t, "old", body["currentPassword"])
			writeBody(w, http.StatusOK, `{"message":"success","user":{"name":"Mona","email":"a@b.co"},"token":"rotated"}`)
		})
	})
	ctx := context.Background()

	me, err := client.GetMe(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", me.ID)
	assert.Equal(t, "01012345678", me.Phone)

	updated, err := client.UpdateMe(ctx, testToken, domain.ProfileInput{Name: "Mona"})
	require.NoError(t, err)
	assert.Equal(t, "Mona", updated.Name)

	res, err := client.ChangePassword(ctx, testToken, domain.ChangePasswordInput{CurrentPassword: "old", Password: "newpass", RePassword: "newpass"})
	require.NoError(t, err)
	assert.Equal(t, "rotated", res.Token)
}

func TestAddresses(t *testing.T) {
	list := `{"results":1,"status":"success","data":[{"_id":"a1","name":"Home","details":"12 Nile St","phone":"01012345678","city":"Cairo"}]}`
	client := newFakeGateway(t, func(r chi.Router) {
		r.Get("/addresses", func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusOK, list)
		})
		r.Post("/addresses", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Cairo", readBody(t, r)["city"])
			writeBody(w, http.StatusOK, list)
		})
		r.Delete("/addresses/{id}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "a1", chi.URLParam(r, "id"))
			writeBody(w, http.StatusOK, `{"status":"success","data":[]}`)
		})
	})
	ctx := context.Background()

	got, err := client.ListAddresses(ctx, testToken)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Home", got[0].Name)

	got, err = client.AddAddress(ctx, testToken, domain.AddressInput{Name: "Home", Details: "12 Nile St", Phone: "01012345678", City: "Cairo"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = client.RemoveAddress(ctx, testToken, "a1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReviews(t *testing.T) {
	client := newFakeGateway(t, func(r chi.Router) {
		r.Get("/products/{id}/reviews", func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusOK, `{"results":1,"data":[{"_id":"r1","review":"great","rating":5,"product":"p1","user":{"_id":"u1","name":"Ahmed"},"createdAt":"2024-01-05T10:00:00.000Z"}]}`)
		})
		r.Post("/products/{id}/reviews", func(w http.ResponseWriter, r *http.Request) {
			body := readBody(t, r)
			assert.Equal(t, "nice", body["review"])
			assert.Equal(t, float64(4), body["rating"])
			writeBody(w, http.StatusCreated, `{"data":{"_id":"r2","review":"nice","rating":4,"user":"u1"}}`)
		})
		r.Put("/reviews/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusOK, `{"data":{"_id":"r2","review":"nicer","rating":5,"product":"p1","user":"u1"}}`)
		})
		r.Delete("/reviews/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	ctx := context.Background()

	reviews, err := client.ListReviews(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Ahmed", reviews[0].UserName)
	assert.Equal(t, "u1", reviews[0].UserID)

	created, err := client.CreateReview(ctx, testToken, "p1", domain.ReviewInput{Text: "nice", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ProductID)
	assert.Equal(t, "u1", created.UserID)

	updated, err := client.UpdateReview(ctx, testToken, "r2", domain.ReviewInput{Text: "nicer", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, float64(5), updated.Rating)

	require.NoError(t, client.DeleteReview(ctx, testToken, "r2"))
}
