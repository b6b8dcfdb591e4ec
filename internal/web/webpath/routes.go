package webpath

const (
	Home       = "/"
	OauthToken = "/oauth/token"

	Api            = "/api"
	ApiArticles    = Api + "/articles"
	ApiArticleByID = ApiArticles + "/:id"
	ApiUsers       = Api + "/users"
	ApiPassword    = ApiUsers + "/password"
	ApiUserInfo    = Api + "/userInfo"
)
