// Package functionshttp реализует HTTP-функции поверх одного контейнера объектного хранилища.
// Эндпоинты (относительно префикса, по умолчанию /api):
//   - /hello — статическое приветствие, эхо HTTP-метода.
//   - /health — сведения о платформе и ресурсах; 503, если метрики собрать не удалось.
//   - GET /blobs?prefix=&max_results= — одна страница объектов с нормализованными метаданными.
//   - POST /upload — multipart-загрузка файла из поля file под новым ключом <uuid><ext>.
//   - GET /blob-test — пятишаговая самопроверка подключения и прав доступа.
//
// Каждый ответ — JSON-конверт с полями status и timestamp, заголовками
// Content-Type: application/json и Access-Control-Allow-Origin: *.
package functionshttp
