package constants

// Static route constants
const (
	RegisterRoute = "/register"
	LoginRoute    = "/login"
	LogoutRoute   = "/logout"

	JournalsRoute    = "/journals"
	MoodsRoute       = "/moods"
	MoodsRangeRoute  = "/moods/range"
	MindfulnessRoute = "/mindfulness"

	UserProfileRoute  = "/user/profile"
	UserPasswordRoute = "/user/password"

	PremiumActivateRoute = "/premium/activate"
	BillingWebhookRoute  = "/webhook"
)
