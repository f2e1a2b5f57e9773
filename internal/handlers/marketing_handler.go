package handlers

import (
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/httpresp"
)

// MarketingHandler monta a lista de contatos para campanhas: todo nome e
// telefone que já passou pela barbearia, vindo de agendamentos, vendas e
// caderninho, sem repetição.
type MarketingHandler struct {
	db *gorm.DB
}

func NewMarketingHandler(db *gorm.DB) *MarketingHandler {
	return &MarketingHandler{db: db}
}

type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// GET /api/marketing/contacts
func (h *MarketingHandler) ListContacts(c *gin.Context) {
	type row struct {
		Name  string
		Phone string
	}

	queries := []*gorm.DB{
		h.db.Table("bookings").
			Select("client_name AS name, client_phone AS phone"),
		h.db.Table("transactions").
			Select("client_name AS name, client_phone AS phone").
			Where("client_name <> ''"),
		h.db.Table("fiado_clients").
			Select("name, phone"),
	}

	seen := make(map[string]bool)
	var contacts []Contact

	for _, q := range queries {
		var rows []row
		if err := q.Scan(&rows).Error; err != nil {
			httperr.Internal(c, "failed_to_list_contacts", "Não foi possível montar a lista de contatos.")
			return
		}

		for _, r := range rows {
			name := strings.TrimSpace(r.Name)
			if name == "" {
				continue
			}
			key := strings.ToLower(name) + "|" + strings.TrimSpace(r.Phone)
			if seen[key] {
				continue
			}
			seen[key] = true
			contacts = append(contacts, Contact{Name: name, Phone: strings.TrimSpace(r.Phone)})
		}
	}

	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].Name < contacts[j].Name
	})

	httpresp.List(c, contacts)
}
