// Package wish generates celebratory wish texts for money draws. The
// templates are tiered by amount; the generator is a pure string producer
// with no effect on game state.
package wish

import (
	"math/rand"
	"strings"
)

type tier struct {
	min   int64
	texts []string
}

// Ordered highest tier first; Generate picks the first tier the amount
// reaches.
var tiers = []tier{
	{
		min: 500000,
		texts: []string{
			"Đại gia {name} chân đất mắt to,\nTiền vào như nước, chẳng lo điều gì.",
			"Nửa triệu vào tay {name} rồi,\nCả năm sung túc, ngồi chơi xơi quà.",
			"Chúc mừng {name} đại gia,\nTiền này để dành mua nhà năm sau!",
		},
	},
	{
		min: 200000,
		texts: []string{
			"{name} ơi, nhân phẩm tuyệt vời,\nNăm nay gặt hái bầu trời thành công!",
			"Hai trăm nghìn, lộc đầy tay,\n{name} cười tít mắt, vận may ùa về.",
		},
	},
	{
		min: 100000,
		texts: []string{
			"{name} cười tít mắt rồi,\nTrăm nghìn may mắn, lộc rơi đầy nhà.",
			"Đầu năm bốc được trăm ca,\n{name} vui vẻ, mặn mà cả năm.",
		},
	},
	{
		min: 50000,
		texts: []string{
			"{name} ơi, năm mới phát tài,\nTiền vào cửa trước, chẳng sai cửa nào.",
			"Năm chục cũng là lộc to,\n{name} đừng lo lắng, trời cho lộc này.",
		},
	},
	{
		min: 20000,
		texts: []string{
			"Hai mươi nghìn, phở một tô,\n{name} ăn cho ấm, đừng lo ế chồng (vợ).",
			"Của ít lòng nhiều {name} ơi,\nVui là chính, tiền là... phụ thôi.",
		},
	},
	{
		min: 10000,
		texts: []string{
			"Lộc này tuy nhỏ nhưng vui,\n{name} nhận lấy, nụ cười trên môi.",
			"Mười nghìn, hai chục cũng tiền,\n{name} đừng chê ít, lộc hiền đầu năm.",
		},
	},
	{
		min: 0,
		texts: []string{
			"Của ít lòng nhiều {name} ơi,\nQuan trọng là lộc, là lời chúc vui.",
			"Đầu năm nhận chút lộc rơi,\n{name} sẽ gặp may mắn trọn đời ấm êm.",
		},
	},
}

// Generate returns a wish for the player and amount. Deterministic modulo
// its own template pick.
func Generate(playerName string, amount int64) string {
	group := tiers[len(tiers)-1]
	for _, t := range tiers {
		if amount >= t.min {
			group = t
			break
		}
	}
	text := group.texts[rand.Intn(len(group.texts))]
	return strings.ReplaceAll(text, "{name}", playerName)
}
