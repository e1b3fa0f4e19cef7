package handlers

import (
	"log"
	"net/http"

	"ainnect/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSConnect подключает клиента к пушу событий графа связей.
// Соединение живет, пока клиент его не закроет.
func WSConnect(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Failed to upgrade websocket connection:", err)
		return
	}

	services.GlobalWSConnManager.Add(userID, conn)
	defer func() {
		services.GlobalWSConnManager.Remove(userID, conn)
		_ = conn.Close()
	}()

	// Читаем, чтобы отлавливать закрытие со стороны клиента
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
