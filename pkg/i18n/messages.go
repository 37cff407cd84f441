package i18n

// Generic
var (
	MsgSuccess             = Message{"Success", "نجح"}
	MsgBadRequest          = Message{"Bad request", "طلب غير صحيح"}
	MsgInvalidRequestBody  = Message{"Invalid request body", "بيانات الطلب غير صحيحة"}
	MsgInvalidID           = Message{"Invalid identifier", "معرف غير صحيح"}
	MsgUnauthorized        = Message{"Unauthorized access", "وصول غير مصرح به"}
	MsgForbidden           = Message{"Access forbidden", "الوصول محظور"}
	MsgNotFound            = Message{"Resource not found", "المورد غير موجود"}
	MsgMethodNotAllowed    = Message{"Method not allowed", "الطريقة غير مسموحة"}
	MsgConflict            = Message{"Resource conflict", "تعارض في المورد"}
	MsgFileTooLarge        = Message{"File too large", "الملف كبير جداً"}
	MsgUnsupportedFileType = Message{"Unsupported file type", "نوع الملف غير مدعوم"}
	MsgFileRequired        = Message{"File is required", "الملف مطلوب"}
	MsgUnprocessable       = Message{"Unprocessable entity", "كيان غير قابل للمعالجة"}
	MsgValidationError     = Message{"Validation error", "خطأ في التحقق من صحة البيانات"}
	MsgRateLimited         = Message{"Rate limit exceeded. Please try again later.", "تم تجاوز حد المعدل. يرجى المحاولة مرة أخرى لاحقاً."}
	MsgInternalError       = Message{"Internal server error", "خطأ داخلي في الخادم"}
	MsgServiceUnavailable  = Message{"Service unavailable", "الخدمة غير متاحة"}
	MsgInvalidTransition   = Message{"Invalid status transition", "انتقال حالة غير صالح"}
	MsgInvalidDate         = Message{"Invalid date format, use YYYY-MM-DD", "تنسيق التاريخ غير صحيح، استخدم YYYY-MM-DD"}
)

// Auth and tokens
var (
	MsgTokenRequired        = Message{"Authorization token is required", "رمز التفويض مطلوب"}
	MsgTokenInvalid         = Message{"Invalid token", "رمز مميز غير صحيح"}
	MsgTokenExpired         = Message{"Token has expired", "انتهت صلاحية الرمز المميز"}
	MsgTokenRevoked         = Message{"Token has been revoked", "تم إلغاء الرمز المميز"}
	MsgRegistered           = Message{"Registration successful", "تم التسجيل بنجاح"}
	MsgEmailExists          = Message{"Email address already exists", "عنوان البريد الإلكتروني موجود بالفعل"}
	MsgLicenseExists        = Message{"License number already exists", "رقم الترخيص موجود بالفعل"}
	MsgLoginSuccess         = Message{"Login successful", "تم تسجيل الدخول بنجاح"}
	MsgInvalidCredentials   = Message{"Invalid email or password", "البريد الإلكتروني أو كلمة المرور غير صحيحة"}
	MsgAccountDisabled      = Message{"Account is disabled", "الحساب معطل"}
	MsgLogoutSuccess        = Message{"Logout successful", "تم تسجيل الخروج بنجاح"}
	MsgTokenRefreshed       = Message{"Token refreshed successfully", "تم تحديث الرمز المميز بنجاح"}
	MsgPasswordChanged      = Message{"Password changed successfully", "تم تغيير كلمة المرور بنجاح"}
	MsgWrongPassword        = Message{"Current password is incorrect", "كلمة المرور الحالية غير صحيحة"}
	MsgUserNotFound         = Message{"User not found", "المستخدم غير موجود"}
	MsgUserRetrieved        = Message{"User retrieved successfully", "تم استرداد المستخدم بنجاح"}
	MsgProfileUpdated       = Message{"Profile updated successfully", "تم تحديث الملف الشخصي بنجاح"}
	MsgAvatarUploaded       = Message{"Avatar uploaded successfully", "تم رفع الصورة الشخصية بنجاح"}
	MsgUserStatusUpdated    = Message{"User status updated successfully", "تم تحديث حالة المستخدم بنجاح"}
	MsgPatientsOnly         = Message{"This action is only available to patients", "هذا الإجراء متاح للمرضى فقط"}
	MsgMedicalInfoRetrieved = Message{"Medical information retrieved successfully", "تم استرداد المعلومات الطبية بنجاح"}
	MsgMedicalInfoUpdated   = Message{"Medical information updated successfully", "تم تحديث المعلومات الطبية بنجاح"}
)

// Addresses
var (
	MsgAddressesRetrieved = Message{"Addresses retrieved successfully", "تم استرداد العناوين بنجاح"}
	MsgAddressAdded       = Message{"Address added successfully", "تم إضافة العنوان بنجاح"}
	MsgAddressUpdated     = Message{"Address updated successfully", "تم تحديث العنوان بنجاح"}
	MsgAddressDeleted     = Message{"Address deleted successfully", "تم حذف العنوان بنجاح"}
	MsgAddressNotFound    = Message{"Address not found", "العنوان غير موجود"}
)

// Pharmacies and doctors
var (
	MsgPharmaciesRetrieved  = Message{"Pharmacies retrieved successfully", "تم استرداد الصيدليات بنجاح"}
	MsgPharmacyRetrieved    = Message{"Pharmacy retrieved successfully", "تم استرداد الصيدلية بنجاح"}
	MsgPharmacyUpdated      = Message{"Pharmacy updated successfully", "تم تحديث الصيدلية بنجاح"}
	MsgPharmacyNotFound     = Message{"Pharmacy not found", "الصيدلية غير موجودة"}
	MsgPharmacyNotVerified  = Message{"Pharmacy is not verified yet", "الصيدلية لم يتم التحقق منها بعد"}
	MsgPharmacyVerification = Message{"Pharmacy verification updated", "تم تحديث حالة التحقق من الصيدلية"}
	MsgPharmacyStats        = Message{"Pharmacy statistics retrieved successfully", "تم استرداد إحصائيات الصيدلية بنجاح"}
	MsgDoctorsRetrieved     = Message{"Doctors retrieved successfully", "تم استرداد الأطباء بنجاح"}
	MsgDoctorRetrieved      = Message{"Doctor retrieved successfully", "تم استرداد الطبيب بنجاح"}
	MsgDoctorUpdated        = Message{"Doctor profile updated successfully", "تم تحديث ملف الطبيب بنجاح"}
	MsgDoctorNotFound       = Message{"Doctor not found", "الطبيب غير موجود"}
	MsgDoctorVerification   = Message{"Doctor verification updated", "تم تحديث حالة التحقق من الطبيب"}
)

// Catalog and inventory
var (
	MsgCategoriesRetrieved  = Message{"Categories retrieved successfully", "تم استرداد الفئات بنجاح"}
	MsgCategoryCreated      = Message{"Category created successfully", "تم إنشاء الفئة بنجاح"}
	MsgCategoryUpdated      = Message{"Category updated successfully", "تم تحديث الفئة بنجاح"}
	MsgCategoryNotFound     = Message{"Category not found", "الفئة غير موجودة"}
	MsgMedicationsRetrieved = Message{"Medications retrieved successfully", "تم استرداد الأدوية بنجاح"}
	MsgMedicationRetrieved  = Message{"Medication retrieved successfully", "تم استرداد الدواء بنجاح"}
	MsgMedicationCreated    = Message{"Medication created successfully", "تم إنشاء الدواء بنجاح"}
	MsgMedicationUpdated    = Message{"Medication updated successfully", "تم تحديث الدواء بنجاح"}
	MsgMedicationDeleted    = Message{"Medication deleted successfully", "تم حذف الدواء بنجاح"}
	MsgMedicationNotFound   = Message{"Medication not found", "الدواء غير موجود"}
	MsgBarcodeExists        = Message{"Barcode already exists", "الباركود موجود بالفعل"}
	MsgInventoryRetrieved   = Message{"Inventory retrieved successfully", "تم استرداد المخزون بنجاح"}
	MsgInventoryCreated     = Message{"Inventory item added successfully", "تم إضافة عنصر المخزون بنجاح"}
	MsgInventoryUpdated     = Message{"Inventory item updated successfully", "تم تحديث عنصر المخزون بنجاح"}
	MsgInventoryDeleted     = Message{"Inventory item deleted successfully", "تم حذف عنصر المخزون بنجاح"}
	MsgInventoryNotFound    = Message{"Inventory item not found", "عنصر المخزون غير موجود"}
	MsgInventoryExists      = Message{"Medication already listed in inventory", "الدواء مدرج بالفعل في المخزون"}
	MsgStockUpdated         = Message{"Stock updated successfully", "تم تحديث المخزون بنجاح"}
	MsgInvalidStock         = Message{"Stock cannot be negative", "لا يمكن أن يكون المخزون سالباً"}
	MsgInsufficientStock    = Message{"Insufficient stock", "المخزون غير كافٍ"}
)

// Prescriptions
var (
	MsgPrescriptionUploaded      = Message{"Prescription uploaded successfully", "تم رفع الوصفة الطبية بنجاح"}
	MsgPrescriptionIssued        = Message{"Prescription issued successfully", "تم إصدار الوصفة الطبية بنجاح"}
	MsgPrescriptionsRetrieved    = Message{"Prescriptions retrieved successfully", "تم استرداد الوصفات الطبية بنجاح"}
	MsgPrescriptionRetrieved     = Message{"Prescription retrieved successfully", "تم استرداد الوصفة الطبية بنجاح"}
	MsgPrescriptionVerified      = Message{"Prescription verified successfully", "تم التحقق من الوصفة الطبية بنجاح"}
	MsgPrescriptionRejected      = Message{"Prescription rejected", "تم رفض الوصفة الطبية"}
	MsgPrescriptionCancelled     = Message{"Prescription cancelled", "تم إلغاء الوصفة الطبية"}
	MsgPrescriptionNotFound      = Message{"Prescription not found", "الوصفة الطبية غير موجودة"}
	MsgPrescriptionNoImage       = Message{"Prescription image not found", "صورة الوصفة الطبية غير موجودة"}
	MsgPrescriptionRequired      = Message{"A verified prescription is required for this order", "يلزم وجود وصفة طبية موثقة لهذا الطلب"}
	MsgPrescriptionNotUsable     = Message{"Prescription is not valid for this order", "الوصفة الطبية غير صالحة لهذا الطلب"}
	MsgPrescriptionExpiryInvalid = Message{"Expiry date must be in the future", "يجب أن يكون تاريخ الانتهاء في المستقبل"}
	MsgPatientNotFound           = Message{"Patient not found", "المريض غير موجود"}
)

// Orders
var (
	MsgOrderCreated          = Message{"Order created successfully", "تم إنشاء الطلب بنجاح"}
	MsgOrdersRetrieved       = Message{"Orders retrieved successfully", "تم استرداد الطلبات بنجاح"}
	MsgOrderRetrieved        = Message{"Order retrieved successfully", "تم استرداد الطلب بنجاح"}
	MsgOrderUpdated          = Message{"Order status updated successfully", "تم تحديث حالة الطلب بنجاح"}
	MsgOrderCancelled        = Message{"Order cancelled successfully", "تم إلغاء الطلب بنجاح"}
	MsgOrderNotFound         = Message{"Order not found", "الطلب غير موجود"}
	MsgOrderNotCancellable   = Message{"Order can no longer be cancelled", "لا يمكن إلغاء الطلب بعد الآن"}
	MsgDeliveryUnavailable   = Message{"Pharmacy does not offer delivery", "الصيدلية لا تقدم خدمة التوصيل"}
	MsgDeliveryAddressNeeded = Message{"Delivery address is required", "عنوان التوصيل مطلوب"}
	MsgItemUnavailable       = Message{"One or more items are unavailable", "عنصر واحد أو أكثر غير متوفر"}
	MsgReasonRequired        = Message{"Cancellation reason is required", "سبب الإلغاء مطلوب"}
)

// Chat
var (
	MsgConversationsRetrieved = Message{"Conversations retrieved successfully", "تم استرداد المحادثات بنجاح"}
	MsgConversationCreated    = Message{"Conversation created successfully", "تم إنشاء المحادثة بنجاح"}
	MsgConversationNotFound   = Message{"Conversation not found", "المحادثة غير موجودة"}
	MsgConversationSelf       = Message{"Cannot start a conversation with yourself", "لا يمكنك بدء محادثة مع نفسك"}
	MsgMessagesRetrieved      = Message{"Messages retrieved successfully", "تم استرداد الرسائل بنجاح"}
	MsgMessageSent            = Message{"Message sent successfully", "تم إرسال الرسالة بنجاح"}
	MsgMessageUpdated         = Message{"Message updated successfully", "تم تحديث الرسالة بنجاح"}
	MsgMessageDeleted         = Message{"Message deleted successfully", "تم حذف الرسالة بنجاح"}
	MsgMessageNotFound        = Message{"Message not found", "الرسالة غير موجودة"}
	MsgMessageTooLong         = Message{"Message is too long", "الرسالة طويلة جداً"}
	MsgMessageEmpty           = Message{"Message content is required", "محتوى الرسالة مطلوب"}
	MsgMarkedRead             = Message{"Marked as read", "تم التحديد كمقروء"}
	MsgMuteUpdated            = Message{"Mute setting updated", "تم تحديث إعداد الكتم"}
	MsgTypingSent             = Message{"Typing status sent", "تم إرسال حالة الكتابة"}
	MsgUnreadCount            = Message{"Unread count retrieved successfully", "تم استرداد عدد غير المقروء بنجاح"}
)

// Notifications
var (
	MsgNotificationsRetrieved = Message{"Notifications retrieved successfully", "تم استرداد الإشعارات بنجاح"}
	MsgNotificationRetrieved  = Message{"Notification retrieved successfully", "تم استرداد الإشعار بنجاح"}
	MsgNotificationRead       = Message{"Notification marked as read", "تم تحديد الإشعار كمقروء"}
	MsgNotificationsAllRead   = Message{"All notifications marked as read", "تم تحديد جميع الإشعارات كمقروءة"}
	MsgNotificationDeleted    = Message{"Notification deleted successfully", "تم حذف الإشعار بنجاح"}
	MsgNotificationsCleared   = Message{"All notifications cleared", "تم مسح جميع الإشعارات"}
	MsgNotificationNotFound   = Message{"Notification not found", "الإشعار غير موجود"}
)

// Reviews
var (
	MsgReviewsRetrieved  = Message{"Reviews retrieved successfully", "تم استرداد التقييمات بنجاح"}
	MsgReviewRetrieved   = Message{"Review retrieved successfully", "تم استرداد التقييم بنجاح"}
	MsgReviewCreated     = Message{"Review created successfully", "تم إنشاء التقييم بنجاح"}
	MsgReviewUpdated     = Message{"Review updated successfully", "تم تحديث التقييم بنجاح"}
	MsgReviewDeleted     = Message{"Review deleted successfully", "تم حذف التقييم بنجاح"}
	MsgReviewNotFound    = Message{"Review not found", "التقييم غير موجود"}
	MsgReviewExists      = Message{"You have already reviewed this item", "لقد قمت بتقييم هذا العنصر بالفعل"}
	MsgReviewTarget      = Message{"Exactly one of pharmacy_id or medication_id is required", "يجب تحديد صيدلية أو دواء واحد فقط"}
	MsgReviewStats       = Message{"Review statistics retrieved successfully", "تم استرداد إحصائيات التقييمات بنجاح"}
	MsgHelpfulRecorded   = Message{"Marked as helpful", "تم التحديد كمفيد"}
	MsgHelpfulDuplicate  = Message{"You have already marked this review as helpful", "لقد قمت بتحديد هذا التقييم كمفيد بالفعل"}
	MsgHelpfulOwnReview  = Message{"You cannot mark your own review as helpful", "لا يمكنك تحديد تقييمك كمفيد"}
	MsgResponseRecorded  = Message{"Response added successfully", "تمت إضافة الرد بنجاح"}
	MsgResponseDuplicate = Message{"Review already has a response", "التقييم لديه رد بالفعل"}
)

// Appointments
var (
	MsgTimeSlotCreated          = Message{"Time slot created successfully", "تم إنشاء الموعد المتاح بنجاح"}
	MsgTimeSlotsRetrieved       = Message{"Time slots retrieved successfully", "تم استرداد المواعيد المتاحة بنجاح"}
	MsgTimeSlotDeleted          = Message{"Time slot deleted successfully", "تم حذف الموعد المتاح بنجاح"}
	MsgTimeSlotNotFound         = Message{"Time slot not found", "الموعد المتاح غير موجود"}
	MsgTimeSlotUnavailable      = Message{"Time slot is not available", "الموعد غير متاح"}
	MsgTimeSlotBooked           = Message{"Time slot already has bookings", "يوجد حجوزات على هذا الموعد"}
	MsgTimeSlotExists           = Message{"A time slot already starts at this time", "يوجد موعد يبدأ في هذا الوقت بالفعل"}
	MsgTimeSlotInvalid          = Message{"Slot must end after it starts and lie in the future", "يجب أن ينتهي الموعد بعد بدايته وأن يكون في المستقبل"}
	MsgInvalidTime              = Message{"Invalid time format, use HH:MM", "تنسيق الوقت غير صحيح، استخدم HH:MM"}
	MsgAppointmentBooked        = Message{"Appointment booked successfully", "تم حجز الموعد بنجاح"}
	MsgAppointmentsRetrieved    = Message{"Appointments retrieved successfully", "تم استرداد المواعيد بنجاح"}
	MsgAppointmentRetrieved     = Message{"Appointment retrieved successfully", "تم استرداد الموعد بنجاح"}
	MsgAppointmentUpdated       = Message{"Appointment updated successfully", "تم تحديث الموعد بنجاح"}
	MsgAppointmentCancelled     = Message{"Appointment cancelled successfully", "تم إلغاء الموعد بنجاح"}
	MsgAppointmentRescheduled   = Message{"Appointment rescheduled successfully", "تم تغيير موعد الحجز بنجاح"}
	MsgAppointmentNotFound      = Message{"Appointment not found", "الموعد غير موجود"}
	MsgAppointmentExists        = Message{"You have already booked this time slot", "لقد حجزت هذا الموعد بالفعل"}
	MsgAppointmentDeadline      = Message{"Too close to the appointment to change it", "لا يمكن تعديل الموعد لقربه"}
	MsgAppointmentRescheduleMax = Message{"Maximum reschedule limit reached", "تم الوصول إلى الحد الأقصى لتغيير الموعد"}
	MsgAppointmentStats         = Message{"Appointment statistics retrieved successfully", "تم استرداد إحصائيات المواعيد بنجاح"}
)

// Favorites and cart
var (
	MsgFavoritesRetrieved = Message{"Favorites retrieved successfully", "تم استرداد المفضلة بنجاح"}
	MsgFavoriteAdded      = Message{"Item added to favorites successfully", "تم إضافة العنصر إلى المفضلة بنجاح"}
	MsgFavoriteRemoved    = Message{"Item removed from favorites", "تم حذف العنصر من المفضلة"}
	MsgFavoritesCleared   = Message{"Favorites cleared", "تم مسح المفضلة"}
	MsgFavoriteStatus     = Message{"Favorite status retrieved", "تم استرداد حالة المفضلة"}
	MsgFavoriteStats      = Message{"Favorite statistics retrieved successfully", "تم استرداد إحصائيات المفضلة بنجاح"}
	MsgFavoriteNotFound   = Message{"Favorite not found", "العنصر غير موجود في المفضلة"}
	MsgFavoriteExists     = Message{"Item is already in favorites", "العنصر موجود في المفضلة بالفعل"}
	MsgFavoriteType       = Message{"Item type must be medication or pharmacy", "نوع العنصر يجب أن يكون دواء أو صيدلية"}
	MsgCartRetrieved      = Message{"Cart retrieved successfully", "تم جلب السلة بنجاح"}
	MsgCartItemAdded      = Message{"Item added to cart", "تم إضافة العنصر إلى السلة"}
	MsgCartItemUpdated    = Message{"Cart item updated", "تم تحديث عنصر السلة"}
	MsgCartItemRemoved    = Message{"Item removed from cart", "تم حذف العنصر من السلة"}
	MsgCartCleared        = Message{"Cart cleared", "تم مسح السلة"}
	MsgCartItemNotFound   = Message{"Cart item not found", "عنصر السلة غير موجود"}
)

// Admin
var (
	MsgAuditLogsRetrieved = Message{"Audit logs retrieved successfully", "تم استرداد سجلات التدقيق بنجاح"}
	MsgAuditLogRetrieved  = Message{"Audit log retrieved successfully", "تم استرداد سجل التدقيق بنجاح"}
	MsgAuditLogNotFound   = Message{"Audit log not found", "سجل التدقيق غير موجود"}
	MsgAuditLogSummary    = Message{"Audit summary retrieved successfully", "تم استرداد ملخص التدقيق بنجاح"}
	MsgInvalidDateRange   = Message{"Start date must not be after end date", "يجب ألا يكون تاريخ البداية بعد تاريخ النهاية"}
)

// Notification bodies. The first %s placeholder takes an order, prescription or appointment number.
var (
	NotifyOrderCreatedTitle       = Message{"New order received", "تم استلام طلب جديد"}
	NotifyOrderCreatedBody        = Message{"Order %s is waiting for confirmation", "الطلب %s بانتظار التأكيد"}
	NotifyOrderStatusTitle        = Message{"Order status updated", "تم تحديث حالة الطلب"}
	NotifyOrderStatusBody         = Message{"Order %s is now %s", "الطلب %s أصبح %s"}
	NotifyOrderCancelledTitle     = Message{"Order cancelled", "تم إلغاء الطلب"}
	NotifyOrderCancelledBody      = Message{"Order %s has been cancelled", "تم إلغاء الطلب %s"}
	NotifyPrescriptionNewTitle    = Message{"New prescription", "وصفة طبية جديدة"}
	NotifyPrescriptionNewBody     = Message{"Prescription %s is awaiting verification", "الوصفة الطبية %s بانتظار التحقق"}
	NotifyPrescriptionIssuedBody  = Message{"A doctor issued prescription %s for you", "أصدر لك طبيب الوصفة الطبية %s"}
	NotifyPrescriptionStatusTitle = Message{"Prescription update", "تحديث الوصفة الطبية"}
	NotifyPrescriptionStatusBody  = Message{"Prescription %s is now %s", "الوصفة الطبية %s أصبحت %s"}
	NotifyChatTitle               = Message{"New message", "رسالة جديدة"}
	NotifyReviewTitle             = Message{"New review", "تقييم جديد"}
	NotifyReviewBody              = Message{"Your pharmacy received a %d-star review", "حصلت صيدليتك على تقييم %d نجوم"}
	NotifyAppointmentNewTitle     = Message{"New appointment", "موعد جديد"}
	NotifyAppointmentNewBody      = Message{"Appointment %s was booked for %s", "تم حجز الموعد %s بتاريخ %s"}
	NotifyAppointmentStatusTitle  = Message{"Appointment update", "تحديث الموعد"}
	NotifyAppointmentStatusBody   = Message{"Appointment %s is now %s", "الموعد %s أصبح %s"}
	NotifyAppointmentMovedBody    = Message{"Appointment %s moved to %s", "تم نقل الموعد %s إلى %s"}
	NotifyVerificationTitle       = Message{"Verification update", "تحديث حالة التحقق"}
	NotifyVerificationBody        = Message{"Your pharmacy verification status is now %s", "حالة التحقق من صيدليتك أصبحت %s"}
)

// StatusLabels renders order, prescription and appointment statuses inside notification bodies.
var StatusLabels = map[string]Message{
	"pending":          {"pending", "قيد الانتظار"},
	"confirmed":        {"confirmed", "مؤكد"},
	"preparing":        {"being prepared", "قيد التحضير"},
	"ready":            {"ready", "جاهز"},
	"out_for_delivery": {"out for delivery", "في الطريق"},
	"delivered":        {"delivered", "تم التوصيل"},
	"cancelled":        {"cancelled", "ملغي"},
	"verified":         {"verified", "موثق"},
	"rejected":         {"rejected", "مرفوض"},
	"filled":           {"filled", "تم صرفه"},
	"expired":          {"expired", "منتهي الصلاحية"},
	"in_progress":      {"in progress", "قيد التنفيذ"},
	"completed":        {"completed", "مكتمل"},
}

// StatusLabel returns the localized status label, or the raw status if unknown.
func StatusLabel(status string) Message {
	if m, ok := StatusLabels[status]; ok {
		return m
	}
	return Message{status, status}
}
