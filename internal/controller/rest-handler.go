package controller

import (
	"net/http"

	"github.com/MrfksIv/morf-stream/internal/service"
	"github.com/MrfksIv/morf-stream/pkg/rest"
)

func (c *controller) getVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := c.roomService.ListVideos(r.Context())
	if err != nil {
		c.logger.ErrorContext(r.Context(), "failed to list videos", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "failed to list videos"})
		return
	}

	if videos == nil {
		// keep the response a JSON array
		videos = []service.VideoDescriptor{}
	}

	rest.WriteJSON(w, http.StatusOK, videos)
}
