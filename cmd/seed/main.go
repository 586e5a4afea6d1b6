package main

import (
	"log"
	"os"

	"github.com/nurfahmi/Agentic-Wa/internal/constant"
	"github.com/nurfahmi/Agentic-Wa/internal/model"
	"github.com/nurfahmi/Agentic-Wa/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedUsers(db)
	seedEmployers(db)
	seedRules(db)
	seedKnowledge(db)

	log.Println("Seed complete!")
	log.Println("Login: admin@koperasi.gov.my / admin123")
}

func seedUsers(db *gorm.DB) {
	log.Println("Seeding users...")

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), 12)
	if err != nil {
		log.Fatal("Error hashing seed password:", err)
	}

	users := []model.User{
		{Name: "Super Admin", Email: "admin@koperasi.gov.my", Role: constant.RoleSuperadmin},
		{Name: "Ahmad Razak", Email: "ahmad@koperasi.gov.my", Role: constant.RoleAdmin},
		{Name: "Siti Aminah", Email: "siti@koperasi.gov.my", Role: constant.RoleMasterAgent},
		{Name: "Mohd Faizal", Email: "faizal@koperasi.gov.my", Role: constant.RoleAgent},
		{Name: "Nurul Huda", Email: "nurul@koperasi.gov.my", Role: constant.RoleAgent},
	}
	for _, u := range users {
		var existing model.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			log.Printf("User '%s' already exists, skipping...", u.Email)
			continue
		}
		u.Password = string(hashed)
		u.Status = "ACTIVE"
		if err := db.Create(&u).Error; err != nil {
			log.Printf("Error creating user '%s': %v", u.Email, err)
		} else {
			log.Printf("Created user: %s (%s)", u.Name, u.Role)
		}
	}
}

func seedEmployers(db *gorm.DB) {
	log.Println("Seeding government employers...")

	employers := []model.GovernmentEmployer{
		{Name: "Jabatan Perdana Menteri", Code: "JPM", Ministry: "JPM", Category: "PERSEKUTUAN"},
		{Name: "Kementerian Kewangan", Code: "MOF", Ministry: "MOF", Category: "PERSEKUTUAN"},
		{Name: "Kementerian Pendidikan Malaysia", Code: "MOE", Ministry: "KPM", Category: "PERSEKUTUAN"},
		{Name: "Kementerian Kesihatan Malaysia", Code: "MOH", Ministry: "KKM", Category: "PERSEKUTUAN"},
		{Name: "Kementerian Dalam Negeri", Code: "MOHA", Ministry: "KDN", Category: "PERSEKUTUAN"},
		{Name: "Kementerian Pertahanan", Code: "MINDEF", Ministry: "MINDEF", Category: "PERSEKUTUAN"},
		{Name: "Polis Diraja Malaysia", Code: "PDRM", Ministry: "KDN", Category: "PERSEKUTUAN"},
		{Name: "Angkatan Tentera Malaysia", Code: "ATM", Ministry: "MINDEF", Category: "PERSEKUTUAN"},
		{Name: "Jabatan Kastam Diraja Malaysia", Code: "JKDM", Ministry: "MOF", Category: "PERSEKUTUAN"},
		{Name: "Jabatan Imigresen Malaysia", Code: "JIM", Ministry: "KDN", Category: "PERSEKUTUAN"},
		{Name: "Suruhanjaya Perkhidmatan Awam", Code: "SPA", Ministry: "JPA", Category: "PERSEKUTUAN"},
		{Name: "Jabatan Perkhidmatan Awam", Code: "JPA", Ministry: "JPA", Category: "PERSEKUTUAN"},
		{Name: "Kerajaan Negeri Selangor", Code: "SEL", Category: "NEGERI"},
		{Name: "Kerajaan Negeri Johor", Code: "JHR", Category: "NEGERI"},
		{Name: "Dewan Bandaraya Kuala Lumpur", Code: "DBKL", Category: "PBT"},
	}
	for _, emp := range employers {
		var existing model.GovernmentEmployer
		if err := db.Where("code = ?", emp.Code).First(&existing).Error; err == nil {
			continue
		}
		emp.IsApproved = true
		if err := db.Create(&emp).Error; err != nil {
			log.Printf("Error creating employer '%s': %v", emp.Code, err)
		}
	}
	log.Printf("Government employers seeded: %d", len(employers))
}

func seedRules(db *gorm.DB) {
	log.Println("Seeding koperasi rules...")

	rules := []model.KoperasiRule{
		{RuleKey: "min_salary", RuleValue: "1800", Label: "Gaji Minimum (RM)"},
		{RuleKey: "max_age", RuleValue: "58", Label: "Umur Maksimum"},
		{RuleKey: "must_be_penjawat_awam", RuleValue: "true", Label: "Mesti Penjawat Awam"},
		{RuleKey: "max_financing_amount", RuleValue: "200000", Label: "Jumlah Pembiayaan Maksimum (RM)"},
		{RuleKey: "min_service_years", RuleValue: "1", Label: "Tahun Perkhidmatan Minimum"},
	}
	for _, r := range rules {
		var existing model.KoperasiRule
		if err := db.Where("rule_key = ?", r.RuleKey).First(&existing).Error; err == nil {
			continue
		}
		r.IsActive = true
		if err := db.Create(&r).Error; err != nil {
			log.Printf("Error creating rule '%s': %v", r.RuleKey, err)
		}
	}
	log.Println("Koperasi rules seeded")
}

func seedKnowledge(db *gorm.DB) {
	log.Println("Seeding knowledge base entries...")

	entries := []model.KnowledgeEntry{
		{
			Category: "FAQ",
			Title:    "Apakah syarat kelayakan pembiayaan?",
			Content:  "Untuk layak memohon pembiayaan koperasi, anda mesti memenuhi syarat berikut: 1) Penjawat Awam yang disahkan dalam jawatan, 2) Gaji bulanan minimum RM1,800, 3) Umur di bawah 58 tahun, 4) Tidak disenarai hitam oleh mana-mana institusi kewangan. Kelulusan tertakluk kepada semakan lanjut oleh pegawai kami.",
		},
		{
			Category: "DOCUMENTS",
			Title:    "Dokumen yang diperlukan",
			Content:  "Dokumen yang perlu disediakan: 1) Slip gaji terkini (3 bulan terkini), 2) Surat pengesahan jawatan/employment letter, 3) Salinan kad pengenalan (IC), 4) Penyata bank 3 bulan terkini. Semua dokumen boleh dihantar melalui WhatsApp dalam format gambar atau PDF.",
		},
		{
			Category: "RULES",
			Title:    "Kadar pembiayaan",
			Content:  "Kadar keuntungan pembiayaan koperasi adalah antara 3.5% hingga 6.5% setahun bergantung kepada jumlah dan tempoh pembiayaan. Tempoh pembiayaan antara 1 hingga 10 tahun. Jumlah pembiayaan minimum RM5,000 dan maksimum RM200,000. Bayaran bulanan akan ditolak terus dari gaji.",
		},
		{
			Category: "FAQ",
			Title:    "Berapa lama proses kelulusan?",
			Content:  "Proses kelulusan biasanya mengambil masa 3-5 hari bekerja selepas semua dokumen lengkap diterima. Anda akan dimaklumkan melalui WhatsApp mengenai status permohonan anda. Untuk sebarang pertanyaan lanjut, pegawai kami sedia membantu.",
		},
		{
			Category: "SOP",
			Title:    "SOP Eskalasi ke Pegawai",
			Content:  "Eskalasi kepada pegawai dilakukan apabila: 1) AI tidak dapat mengesahkan maklumat pelanggan, 2) Pelanggan meminta untuk bercakap dengan pegawai, 3) Kes kelayakan sempadan (borderline), 4) Dokumen tidak dapat dibaca oleh OCR, 5) Pelanggan menunjukkan ketidakpuasan hati. Pegawai akan mengambil alih dalam masa 15 minit waktu operasi.",
		},
	}
	for _, entry := range entries {
		var existing model.KnowledgeEntry
		if err := db.Where("title = ?", entry.Title).First(&existing).Error; err == nil {
			continue
		}
		entry.IsActive = true
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("Error creating knowledge entry '%s': %v", entry.Title, err)
		}
	}
	// Chunks and embeddings come from the index worker; run the API and
	// re-save each entry, or POST them through /api/knowledge.
	log.Println("Knowledge base entries seeded")
}
