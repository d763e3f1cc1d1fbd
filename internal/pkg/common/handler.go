package handler

import (
	"mime/multipart"
	"net/http"
	"sync"

	"skillshare/internal/pkg/uploader"
	"skillshare/pkg/response"

	"github.com/gin-gonic/gin"
)

// UploadedMedia 上传结果
type UploadedMedia struct {
	URL  string `json:"url"`
	Type string `json:"type"` // image / video
}

// UploadFile 上传文件 (支持批量)
// @Summary 上传媒体文件到 OSS (支持批量)
// @Tags Common
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files"
// @Success 200 {object} response.Response{data=[]UploadedMedia} "URLs"
// @Router /upload [post]
func UploadFile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid form data")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "No files uploaded")
		return
	}

	for _, f := range files {
		if uploader.DetectMediaType(f.Filename) == "" {
			response.Error(c, http.StatusBadRequest, response.ErrMediaInvalid, "Unsupported media type: "+f.Filename)
			return
		}
	}

	if uploader.GlobalUploader == nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Uploader not initialized")
		return
	}

	results := make([]UploadedMedia, len(files))

	// 并发上传，保证结果顺序
	var wg sync.WaitGroup
	var errOnce sync.Once
	var uploadErr error

	// 限制并发数为 5，避免过多协程
	sem := make(chan struct{}, 5)

	for i, file := range files {
		wg.Add(1)
		go func(index int, f *multipart.FileHeader) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if uploadErr != nil {
				return
			}

			url, err := uploader.GlobalUploader.UploadFile(f)
			if err != nil {
				errOnce.Do(func() {
					uploadErr = err
				})
				return
			}
			results[index] = UploadedMedia{
				URL:  url,
				Type: uploader.DetectMediaType(f.Filename),
			}
		}(i, file)
	}

	wg.Wait()

	if uploadErr != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Upload failed: "+uploadErr.Error())
		return
	}

	response.Success(c, results)
}
