package i18n

var messagesRO = map[string]string{
	"success": "succes",

	"error.internal":               "A apărut o eroare internă. Încercați din nou.",
	"error.invalid_request":        "Cerere invalidă.",
	"error.unauthorized":           "Autentificare necesară.",
	"error.forbidden":              "Nu aveți permisiunea necesară pentru această operațiune.",
	"error.not_found":              "Resursa nu a fost găsită.",
	"error.auth_header_missing":    "Lipsește antetul de autorizare.",
	"error.auth_header_invalid":    "Antet de autorizare invalid.",
	"error.token_invalid":          "Token invalid sau expirat.",
	"error.token_revoked":          "Token revocat. Autentificați-vă din nou.",
	"error.jwt_secret_missing":     "Serviciul de autentificare nu este configurat.",
	"error.user_disabled":          "Contul este dezactivat.",
	"error.user_id_invalid":        "Identificator de utilizator invalid.",
	"error.user_id_type_invalid":   "Identificator de utilizator cu tip invalid.",
	"error.rate_limited":           "Prea multe încercări. Reîncercați în %d secunde.",
	"error.rate_limit_unavailable": "Serviciul de limitare a cererilor este indisponibil.",
	"error.login_too_many":         "Prea multe încercări de autentificare. Reîncercați în %d secunde.",

	"error.email_exists":        "Există deja un cont cu acest email.",
	"error.email_invalid":       "Adresă de email invalidă.",
	"error.username_exists":     "Acest nume de utilizator este deja folosit.",
	"error.username_invalid":    "Numele de utilizator trebuie să aibă 3-30 de caractere: litere mici, cifre, puncte sau underscore.",
	"error.invalid_credentials": "Email sau parolă incorecte.",
	"error.password_too_short":  "Parola trebuie să aibă cel puțin 8 caractere.",
	"error.user_type_invalid":   "Tipul de cont trebuie să fie brand sau influencer.",
	"error.user_not_found":      "Utilizatorul nu a fost găsit.",
	"error.not_influencer":      "Doar conturile de influencer pot face această operațiune.",
	"error.not_brand":           "Doar conturile de brand pot face această operațiune.",

	"error.profile_not_found": "Profilul de influencer nu a fost găsit.",
	"error.profile_exists":    "Există deja un profil de influencer pentru acest cont.",
	"error.profile_required":  "Este necesar un profil de influencer pentru a aplica.",

	"error.collab_not_found":      "Colaborarea nu a fost găsită.",
	"error.not_collab_owner":      "Doar brandul care a creat colaborarea poate face această operațiune.",
	"error.not_participant":       "Nu faceți parte din această colaborare.",
	"error.collab_type_invalid":   "Tip de colaborare invalid.",
	"error.collab_terminal":       "Colaborarea este într-o stare finală și nu mai poate fi modificată.",
	"error.collab_status_invalid": "Tranziție de stare invalidă pentru colaborare.",
	"error.collab_not_editable":   "Colaborarea nu mai poate fi editată.",
	"error.collab_not_paid":       "Operațiunea este disponibilă doar pentru colaborări plătite.",
	"error.collab_update_failed":  "Actualizarea colaborării a eșuat.",
	"error.budget_invalid":        "Interval de buget invalid.",

	"error.application_not_found":      "Aplicația nu a fost găsită.",
	"error.application_exists":         "Ați aplicat deja la această colaborare.",
	"error.application_status_invalid": "Stare de aplicație invalidă.",
	"error.application_not_pending":    "Aplicația a fost deja decisă.",
	"error.application_not_accepted":   "Aplicația nu a fost acceptată.",
	"error.collab_not_open":            "Colaborarea nu mai acceptă aplicații.",

	"error.escrow_not_found":        "Contul escrow nu a fost găsit.",
	"error.escrow_exists":           "Există deja un cont escrow pentru această colaborare.",
	"error.escrow_not_required":     "Această colaborare nu folosește escrow.",
	"error.escrow_status_invalid":   "Stare escrow invalidă pentru această operațiune.",
	"error.escrow_not_secured":      "Fondurile nu au fost încă securizate în escrow.",
	"error.escrow_amount_missing":   "Colaborarea nu are un buget definit.",
	"error.payment_provider_failed": "Procesatorul de plăți nu a putut finaliza operațiunea. Încercați din nou.",
	"error.amount_invalid":          "Sumă invalidă.",

	"error.cancellation_not_found":          "Cererea de anulare nu a fost găsită.",
	"error.cancellation_exists":             "Există deja o cerere de anulare în curs pentru această colaborare.",
	"error.cancellation_not_allowed":        "Anularea nu este posibilă în starea curentă.",
	"error.cancellation_window_closed":      "Colaborarea este în fereastra de confirmare. Anularea nu mai este posibilă; deschideți o dispută dacă există o problemă.",
	"error.cancellation_resolution_invalid": "Rezoluție de anulare invalidă.",
	"error.cancellation_status_invalid":     "Cererea de anulare nu mai poate fi procesată.",

	"error.dispute_not_found":          "Disputa nu a fost găsită.",
	"error.dispute_exists":             "Există deja o dispută deschisă pentru această colaborare.",
	"error.dispute_window_closed":      "O dispută poate fi deschisă doar în fereastra de confirmare a livrării.",
	"error.dispute_resolution_invalid": "Rezoluție de dispută invalidă.",
	"error.dispute_status_invalid":     "Disputa nu mai poate fi procesată.",
	"error.dispute_split_invalid":      "Sumele pentru împărțire nu acoperă totalul din escrow.",

	"error.thread_locked":      "Conversația este blocată pe durata disputei.",
	"error.messaging_not_open": "Mesageria se deschide după acceptarea unei aplicații.",
	"error.message_empty":      "Mesajul nu poate fi gol.",

	"error.review_not_found":    "Recenzia nu a fost găsită.",
	"error.review_exists":       "Ați trimis deja o recenzie pentru această colaborare.",
	"error.review_not_eligible": "Recenzia poate fi trimisă doar după finalizarea colaborării.",
	"error.rating_invalid":      "Nota trebuie să fie între 1 și 5.",

	"error.commission_rate_invalid": "Comisionul trebuie să fie între 0 și 100.",
	"error.setting_update_failed":   "Actualizarea setărilor a eșuat.",
}
