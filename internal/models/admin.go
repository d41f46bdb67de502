package models

type AdminStats struct {
	TotalUsers  int `json:"total_users"`
	TotalItems  int `json:"total_items"`
	ActiveChats int `json:"active_chats"`
}
