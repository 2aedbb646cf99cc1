package feature

const (
	Unknown = "Bilinmiyor"

	MsgLoadEmpty      = "Veri yüklenemedi"
	MsgCreateRejected = "Ekleme başarısız"
	MsgUpdateRejected = "Güncelleme başarısız"
	MsgDeleteRejected = "Silme işlemi başarısız"
)

// Messages are the operator-facing outcomes of one entity screen.
type Messages struct {
	Created      string
	Updated      string
	Deleted      string
	LoadFailed   string
	CreateFailed string
	UpdateFailed string
	DeleteFailed string
}

// NewMessages builds the standard texts from the singular and plural noun,
// e.g. "Şirket" and "Şirketler".
func NewMessages(noun, plural string) Messages {
	return Messages{
		Created:      noun + " başarıyla eklendi!",
		Updated:      noun + " başarıyla güncellendi!",
		Deleted:      noun + " başarıyla silindi!",
		LoadFailed:   plural + " yüklenirken bir hata oluştu",
		CreateFailed: noun + " eklenirken bir hata oluştu",
		UpdateFailed: noun + " güncellenirken bir hata oluştu",
		DeleteFailed: noun + " silinirken bir hata oluştu",
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
