package controller

import (
	"github.com/MrfksIv/morf-stream/internal/repository/connection"
	"github.com/MrfksIv/morf-stream/pkg/wsrouter"
)

// getWSRouter registers every inbound event the protocol knows. Unlisted
// message types are ignored for forward compatibility.
func (c *controller) getWSRouter() *wsrouter.WSRouter[*connection.Conn] {
	mux := wsrouter.New[*connection.Conn]()

	mux.Use(c.wsRequestIdWSMw())
	mux.Use(c.loggerWSMw())

	// roster
	wsrouter.Handle(mux, "join_user", c.handleJoinUser)

	// player
	wsrouter.Handle(mux, "change_video", c.handleChangeVideo)
	wsrouter.Handle(mux, "play", c.handlePlay)
	wsrouter.Handle(mux, "pause", c.handlePause)
	wsrouter.Handle(mux, "seek", c.handleSeek)
	wsrouter.Handle(mux, "subtitle_offset", c.handleSubtitleOffset)

	return mux
}
