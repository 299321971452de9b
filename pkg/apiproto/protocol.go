// Package apiproto описывает HTTP-контракт функций: маршруты, параметры и заголовки,
// общие для сервера и клиента.
package apiproto

// Маршруты относительно префикса (по умолчанию /api).
const (
	PathHello     = "/hello"
	PathHealth    = "/health"
	PathBlobs     = "/blobs"
	PathUpload    = "/upload"
	PathBlobTest  = "/blob-test"
	DefaultPrefix = "/api"
)

// Параметры запросов.
const (
	QueryPrefix     = "prefix"
	QueryMaxResults = "max_results"
	FormFieldFile   = "file"
)

// Заголовки ответов.
const (
	HeaderContentType = "Content-Type"
	HeaderAllowOrigin = "Access-Control-Allow-Origin"
	ContentTypeJSON   = "application/json"
	MultipartFormData = "multipart/form-data"
)
